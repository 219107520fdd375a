package lock

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ValentinKolb/kvlock/lib/lockmgr"
	"github.com/ValentinKolb/kvlock/lib/store/memstore"
)

// newSessionCmd creates a command with the --session flag, as acquire and release have it
func newSessionCmd(t *testing.T, session string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{}
	cmd.Flags().String("session", "", "")
	if session != "" {
		require.NoError(t, cmd.Flags().Set("session", session))
	}
	cmd.SetContext(context.Background())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func sessionFromOutput(t *testing.T, out string) string {
	t.Helper()

	idx := strings.Index(out, "session=")
	require.GreaterOrEqual(t, idx, 0, out)
	return strings.TrimSpace(out[idx+len("session="):])
}

func TestAcquireAndReleaseReadTheirOwnSession(t *testing.T) {
	kv := memstore.NewMemoryStore()
	lockMgr = lockmgr.NewLockManager(kv)
	ctx := context.Background()

	// acquire without --session gets a fresh random session every run
	cmd, out := newSessionCmd(t, "")
	require.NoError(t, runAcquire(cmd, []string{"k1", "v"}))
	assert.Contains(t, out.String(), "acquired=true")
	sessionA := sessionFromOutput(t, out.String())

	cmd, out = newSessionCmd(t, "")
	require.NoError(t, runAcquire(cmd, []string{"k2", "v"}))
	sessionB := sessionFromOutput(t, out.String())
	assert.NotEqual(t, sessionA, sessionB)

	// release uses its own --session, not the one generated by acquire
	cmd, out = newSessionCmd(t, "other")
	require.NoError(t, runRelease(cmd, []string{"k1"}))
	assert.Equal(t, "released=false\n", out.String())

	record, err := kv.GetDetails(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, sessionA, record.Session)

	cmd, out = newSessionCmd(t, sessionA)
	require.NoError(t, runRelease(cmd, []string{"k1", "done"}))
	assert.Equal(t, "released=true\n", out.String())

	record, err = kv.GetDetails(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, record.IsLocked())
	assert.Equal(t, []byte("done"), record.Value)

	// an explicit session is used as given
	cmd, out = newSessionCmd(t, "s1")
	require.NoError(t, runAcquire(cmd, []string{"k1", "v"}))
	assert.Equal(t, "acquired=true, session=s1\n", out.String())
}
