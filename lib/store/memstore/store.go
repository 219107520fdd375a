package memstore

import (
	"context"
	"sync/atomic"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
)

// entry is the stored state of one key
type entry struct {
	value       []byte
	session     string
	flags       uint64
	createIndex uint64
	modifyIndex uint64
	lockIndex   uint64
}

type storeImpl struct {
	data  *xsync.MapOf[string, entry]
	index atomic.Uint64
}

// NewMemoryStore creates a new in-memory store instance.
// This store implementation is not distributed and only works inside a single process.
// Every conditional write is evaluated atomically per key.
func NewMemoryStore() store.IStore {
	return &storeImpl{
		data:  xsync.NewMapOf[string, entry](),
		index: atomic.Uint64{},
	}
}

// incAndGetIndex increments the index and returns the new value.
// It is used to ensure that each write operation has a unique index.
//
// Thread-safety: This method is thread-safe since it uses atomic operations.
func (s *storeImpl) incAndGetIndex() uint64 {
	return s.index.Add(1)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(_ context.Context, key string, value []byte) (bool, error) {
	if store.IsBlank(key) || value == nil {
		return false, nil
	}
	valueCopy := copyBytes(value)
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		idx := s.incAndGetIndex()
		if !loaded {
			old.createIndex = idx
		}
		// the session is only ever changed by Lock
		old.value = valueCopy
		old.modifyIndex = idx
		return old, false
	})
	return true, nil
}

func (s *storeImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	record, err := s.GetDetails(ctx, key)
	if err != nil || record == nil {
		return nil, false, err
	}
	return record.Value, true, nil
}

func (s *storeImpl) GetDetails(_ context.Context, key string) (*store.Record, error) {
	if store.IsBlank(key) {
		return nil, nil
	}
	e, ok := s.data.Load(key)
	if !ok {
		return nil, nil
	}
	return e.toRecord(key), nil
}

func (s *storeImpl) Delete(_ context.Context, key string) (bool, error) {
	if store.IsBlank(key) {
		return false, nil
	}
	s.data.Delete(key)
	return true, nil
}

func (s *storeImpl) Lock(_ context.Context, key string, value []byte, op store.LockOperation, sessionID string) (bool, error) {
	if store.IsBlank(key) || store.IsBlank(sessionID) || value == nil {
		return false, nil
	}

	valueCopy := copyBytes(value)
	var ok bool

	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		switch op {
		case store.LockAcquire:
			if old.session != "" && old.session != sessionID {
				// held by another session, nothing changes
				ok = false
				return old, !loaded
			}
			idx := s.incAndGetIndex()
			if !loaded {
				old.createIndex = idx
			}
			if old.session == "" {
				old.lockIndex++
			}
			old.session = sessionID
			old.value = valueCopy
			old.modifyIndex = idx
			ok = true
			return old, false

		case store.LockRelease:
			if !loaded || old.session != sessionID {
				ok = false
				return old, !loaded
			}
			old.session = ""
			old.value = valueCopy
			old.modifyIndex = s.incAndGetIndex()
			ok = true
			return old, false

		default:
			ok = false
			return old, !loaded
		}
	})

	return ok, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (e entry) toRecord(key string) *store.Record {
	return &store.Record{
		Key:         key,
		Value:       copyBytes(e.value),
		Session:     e.session,
		Flags:       e.flags,
		CreateIndex: e.createIndex,
		ModifyIndex: e.modifyIndex,
		LockIndex:   e.lockIndex,
	}
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
