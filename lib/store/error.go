package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Request completed.
	RetCInternalError                   // 1: Request failed due to an internal error.
	RetCTransportError                  // 2: Request could not be delivered (connection refused, timeout, ...).
	RetCUnexpectedStatus                // 3: The store answered with a non-success status.
	RetCDecodeError                     // 4: The response payload could not be decoded.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCTransportError:
		return "TransportError"
	case RetCUnexpectedStatus:
		return "UnexpectedStatus"
	case RetCDecodeError:
		return "DecodeError"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the single client-level error type. It is returned whenever a request
// could not be completed and wraps the underlying cause.
type Error struct {
	Code RetCode // The return code
	Op   string  // The operation that failed (e.g. "get", "acquire")
	Key  string  // The key the operation was issued for
	Err  error   // The underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("KVStoreError (code %s)", e.Code)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s %q", msg, e.Op, e.Key)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given code, operation, key and cause.
// Returns nil if err is nil.
func NewError(code RetCode, op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Op:   op,
		Key:  key,
		Err:  err,
	}
}

// CodeOf returns the RetCode of the first *Error in err's chain, or RetCSuccess for nil
// and RetCInternalError for foreign errors.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return RetCInternalError
}

// IsTransportError reports whether err is a *Error caused by a transport failure.
func IsTransportError(err error) bool {
	return CodeOf(err) == RetCTransportError
}
