package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/kvlock/cmd/kv"
	"github.com/ValentinKolb/kvlock/cmd/lock"
	"github.com/ValentinKolb/kvlock/cmd/serve"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvlock",
		Short: "key-value and session lock client",
		Long: fmt.Sprintf(`kvlock (v%s)

A client for the Consul-compatible key-value HTTP API with
session based locks built on conditional writes.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvlock",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kvlock v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(lock.LockCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
