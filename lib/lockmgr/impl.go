package lockmgr

import (
	"context"

	"github.com/ValentinKolb/kvlock/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("lockmgr")

var (
	acquiredCounter      = metrics.NewCounter(`kvlock_lock_decisions_total{result="acquired"}`)
	reentrantCounter     = metrics.NewCounter(`kvlock_lock_decisions_total{result="reentrant"}`)
	contendedCounter     = metrics.NewCounter(`kvlock_lock_decisions_total{result="contended"}`)
	lostRaceCounter      = metrics.NewCounter(`kvlock_lock_decisions_total{result="lost_race"}`)
	rejectedCounter      = metrics.NewCounter(`kvlock_lock_decisions_total{result="rejected"}`)
	releasedCounter      = metrics.NewCounter(`kvlock_lock_decisions_total{result="released"}`)
	releaseDeniedCounter = metrics.NewCounter(`kvlock_lock_decisions_total{result="release_denied"}`)
)

type lockMgrImpl struct {
	store store.IStore
}

// NewLockManager creates a lock manager on top of the given store.
// The lock manager keeps no state of its own, any number of them may share one store.
func NewLockManager(store store.IStore) ILockManager {
	return &lockMgrImpl{
		store: store,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see lockmgr/interface.go)
// --------------------------------------------------------------------------

func (lm *lockMgrImpl) AcquireLock(ctx context.Context, key string, value []byte, sessionID string) (bool, error) {
	return lm.lock(ctx, key, value, sessionID, store.LockAcquire)
}

func (lm *lockMgrImpl) ReleaseLock(ctx context.Context, key string, value []byte, sessionID string) (bool, error) {
	return lm.lock(ctx, key, value, sessionID, store.LockRelease)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// validInput checks the input of a lock request.
// A blank value is only allowed for release, so a holder can clear the value while unlocking.
func validInput(key string, value []byte, sessionID string, op store.LockOperation) bool {
	if store.IsBlank(key) || store.IsBlank(sessionID) || value == nil {
		return false
	}
	if op == store.LockAcquire && store.IsBlankValue(value) {
		return false
	}
	return true
}

// lock runs the protocol shared by acquire and release.
func (lm *lockMgrImpl) lock(ctx context.Context, key string, value []byte, sessionID string, op store.LockOperation) (bool, error) {
	if !validInput(key, value, sessionID, op) {
		rejectedCounter.Inc()
		Logger.Debugf("%s %q rejected: invalid input", op, key)
		return false, nil
	}

	// Acquire looks before it writes: a held key is never written to, and the holder
	// may acquire again without a round trip. This check is not atomic, the store
	// still decides the race in the conditional write below.
	if op == store.LockAcquire {
		record, err := lm.store.GetDetails(ctx, key)
		if err != nil {
			return false, err
		}
		if record.IsLocked() {
			if record.HeldBy(sessionID) {
				reentrantCounter.Inc()
				Logger.Debugf("acquire %q: already held by session %s", key, sessionID)
				return true, nil
			}
			contendedCounter.Inc()
			Logger.Debugf("acquire %q: held by session %s, requested by %s", key, record.Session, sessionID)
			return false, nil
		}
	}

	// Release does not read first, the store validates ownership itself
	ok, err := lm.store.Lock(ctx, key, value, op, sessionID)
	if err != nil {
		return false, err
	}

	switch {
	case op == store.LockAcquire && ok:
		acquiredCounter.Inc()
	case op == store.LockAcquire:
		lostRaceCounter.Inc()
	case ok:
		releasedCounter.Inc()
	default:
		releaseDeniedCounter.Inc()
	}
	Logger.Debugf("%s %q by session %s: %v", op, key, sessionID, ok)

	return ok, nil
}
