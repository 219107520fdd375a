package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if ok, err := kvStore.Set(cmd.Context(), key, []byte(value)); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, ok=%t\n", key, ok)
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if resp, ok, err := kvStore.Get(cmd.Context(), key); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, found=%v, resp=%s\n", key, ok, resp)
			}
			return nil
		},
	}
	detailsCmd = &cobra.Command{
		Use:   "details [key]",
		Short: "Reads the full record for a key (session, indexes, flags)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if record, err := kvStore.GetDetails(cmd.Context(), key); err != nil {
				return err
			} else if record == nil {
				fmt.Printf("key=%s, found=false\n", key)
			} else {
				fmt.Printf("found=true, %s\n", record)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if ok, err := kvStore.Delete(cmd.Context(), key); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, deleted=%t\n", key, ok)
			}
			return nil
		},
	}
)
