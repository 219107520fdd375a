package store

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Record
// --------------------------------------------------------------------------

// Record is a point-in-time snapshot of one stored entry.
// It is materialized on every read and is stale as soon as it is returned.
type Record struct {
	Key string `json:"Key"`
	// Value is transported as base64 text and holds the decoded bytes.
	Value []byte `json:"Value"`
	// Session is the id of the session currently holding the key (empty = unheld).
	Session string `json:"Session,omitempty"`

	Flags       uint64 `json:"Flags"`
	CreateIndex uint64 `json:"CreateIndex"`
	ModifyIndex uint64 `json:"ModifyIndex"`
	LockIndex   uint64 `json:"LockIndex"`
}

// IsLocked reports whether any session holds the key.
func (r *Record) IsLocked() bool {
	return r != nil && r.Session != ""
}

// HeldBy reports whether the key is held by the given session.
func (r *Record) HeldBy(sessionID string) bool {
	return r.IsLocked() && r.Session == sessionID
}

// String returns a short human-readable representation of the record
func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	session := r.Session
	if session == "" {
		session = "-"
	}
	return fmt.Sprintf("key=%s, value=%s, session=%s, flags=%d, createIndex=%d, modifyIndex=%d, lockIndex=%d",
		r.Key, r.Value, session, r.Flags, r.CreateIndex, r.ModifyIndex, r.LockIndex)
}

// --------------------------------------------------------------------------
// Lock Operation
// --------------------------------------------------------------------------

// LockOperation selects the session qualifier attached to a conditional write.
type LockOperation uint8

const (
	LockAcquire LockOperation = iota // attach the session to the key
	LockRelease                      // detach the session from the key
)

// QueryParam returns the name of the query parameter carrying the session id.
func (op LockOperation) QueryParam() string {
	switch op {
	case LockAcquire:
		return "acquire"
	case LockRelease:
		return "release"
	default:
		return "unknown"
	}
}

func (op LockOperation) String() string {
	return op.QueryParam()
}

// --------------------------------------------------------------------------
// Input Helpers
// --------------------------------------------------------------------------

// IsBlank reports whether s is empty or consists only of ASCII control characters
// and spaces (<= 0x20). Unicode white space such as U+00A0 is not blank.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, isASCIISpaceOrControl) == ""
}

func isASCIISpaceOrControl(r rune) bool {
	return r <= ' '
}

// IsBlankValue reports whether value is nil, empty or only ASCII control characters and spaces.
func IsBlankValue(value []byte) bool {
	return IsBlank(string(value))
}
