package store_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ValentinKolb/kvlock/lib/store"
)

func TestLockOperation_QueryParam(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acquire", store.LockAcquire.QueryParam())
	assert.Equal(t, "release", store.LockRelease.QueryParam())
	assert.Equal(t, "unknown", store.LockOperation(42).QueryParam())
	assert.Equal(t, "release", store.LockRelease.String())
}

func TestRecord_Ownership(t *testing.T) {
	t.Parallel()

	var nilRecord *store.Record
	assert.False(t, nilRecord.IsLocked())
	assert.False(t, nilRecord.HeldBy("a"))
	assert.Equal(t, "<nil>", nilRecord.String())

	unheld := &store.Record{Key: "k"}
	assert.False(t, unheld.IsLocked())
	assert.False(t, unheld.HeldBy(""))

	held := &store.Record{Key: "k", Value: []byte("v"), Session: "a"}
	assert.True(t, held.IsLocked())
	assert.True(t, held.HeldBy("a"))
	assert.False(t, held.HeldBy("b"))
	assert.Contains(t, held.String(), "session=a")
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		blank bool
	}{
		{"", true},
		{" ", true},
		{"\t\n", true},
		{"\x00\x01\x1f", true},
		{"\u00a0", false},
		{"\u2003", false},
		{"a", false},
		{" a ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.blank, store.IsBlank(tt.in), "input %q", tt.in)
		assert.Equal(t, tt.blank, store.IsBlankValue([]byte(tt.in)), "input %q", tt.in)
	}
	assert.True(t, store.IsBlankValue(nil))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, store.NewError(store.RetCTransportError, "get", "k", nil))

	err := store.NewError(store.RetCTransportError, "get", "a/b", io.ErrUnexpectedEOF)
	require.Error(t, err)
	assert.Equal(t, `KVStoreError (code TransportError): get "a/b": unexpected EOF`, err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.True(t, store.IsTransportError(err))

	wrapped := fmt.Errorf("outer: %w", err)
	var storeErr *store.Error
	require.True(t, errors.As(wrapped, &storeErr))
	assert.Equal(t, "a/b", storeErr.Key)
	assert.Equal(t, store.RetCTransportError, store.CodeOf(wrapped))

	assert.Equal(t, store.RetCSuccess, store.CodeOf(nil))
	assert.Equal(t, store.RetCInternalError, store.CodeOf(errors.New("foreign")))
	assert.False(t, store.IsTransportError(store.NewError(store.RetCDecodeError, "get", "k", io.EOF)))
}
