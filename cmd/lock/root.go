package lock

import (
	"fmt"

	"github.com/ValentinKolb/kvlock/cmd/util"
	"github.com/ValentinKolb/kvlock/lib/lockmgr"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	lockMgr lockmgr.ILockManager

	// LockCommands represents the lock command group
	LockCommands = &cobra.Command{
		Use:               "lock",
		Short:             "Perform lock operations",
		PersistentPreRunE: setupLockClient,
	}

	// acquireCmd represents the acquire command
	acquireCmd = &cobra.Command{
		Use:   "acquire [key] [value]",
		Short: "Acquire a lock",
		Long:  "Acquire a lock for a session and write the value to the key. Without --session a random session id is used and printed.",
		Args:  cobra.ExactArgs(2),
		RunE:  runAcquire,
	}

	// releaseCmd represents the release command
	releaseCmd = &cobra.Command{
		Use:   "release [key] [value]",
		Short: "Release a previously acquired lock",
		Long:  "Release a lock held by --session. The value (empty if omitted) is written to the key while releasing.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRelease,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add subcommands to lock command
	LockCommands.AddCommand(acquireCmd)
	LockCommands.AddCommand(releaseCmd)

	// Add client flags to the lock command
	util.SetupClientFlags(LockCommands)

	// Add flags specific to acquire and release
	acquireCmd.Flags().String("session", "", util.WrapString("The session that should hold the lock (default: random uuid)"))
	releaseCmd.Flags().String("session", "", util.WrapString("The session that holds the lock"))
	_ = releaseCmd.MarkFlagRequired("session")
}

// setupLockClient initializes the lock manager on top of the HTTP store client
func setupLockClient(cmd *cobra.Command, _ []string) error {
	kvStore, err := util.NewStore(cmd)
	if err != nil {
		return err
	}

	lockMgr = lockmgr.NewLockManager(kvStore)
	return nil
}

// runAcquire handles the acquire lock command
func runAcquire(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	sessionID, err := cmd.Flags().GetString("session")
	if err != nil {
		return err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// Attempt to acquire the lock
	acquired, err := lockMgr.AcquireLock(cmd.Context(), key, []byte(value), sessionID)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "acquired=%t, session=%s\n", acquired, sessionID)
	return nil
}

// runRelease handles the release lock command
func runRelease(cmd *cobra.Command, args []string) error {
	key := args[0]
	sessionID, err := cmd.Flags().GetString("session")
	if err != nil {
		return err
	}

	value := []byte{}
	if len(args) == 2 {
		value = []byte(args[1])
	}

	// Attempt to release the lock
	released, err := lockMgr.ReleaseLock(cmd.Context(), key, value, sessionID)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "released=%t\n", released)
	return nil
}
