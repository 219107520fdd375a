// Package serializer implements the wire codec of the Consul-compatible key-value API.
//
// Records travel as json objects with a base64 encoded Value and a Session field:
//
//	[{"Key":"cfg/lock","Value":"MQ==","Session":"sessA","Flags":0,
//	  "CreateIndex":7,"ModifyIndex":9,"LockIndex":1}]
//
// The answer to a write, acquire or release is a bare json boolean (true / false).
//
// Key Components:
//
//   - IKVSerializer: The codec interface used by the HTTP store client (decode side)
//     and by the dev server (encode side).
//
//   - CheckResponse: Maps a non-success status to a *store.Error so that callers only
//     ever decode success payloads.
//
//   - Array normalization: A read may answer with one object or with an array of
//     objects (the array form is what range style reads return). DecodeRecord always
//     narrows the payload to one record: the first element of an array, or the
//     object itself. Callers never branch on the payload shape.
//
// Implementations:
//
//   - JSON (NewJSONSerializer): encoding/json with a private wire struct. Besides
//     "Session" the alternative field name "SessionId" is accepted on decode.
package serializer
