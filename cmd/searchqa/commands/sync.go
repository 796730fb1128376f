// ABOUTME: Sync commands for Charm cloud synchronization of saved transcripts
// ABOUTME: Provides status, now, wipe, and keys management
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

Saved transcripts live in Charm KV and sync via SSH keys across
devices linked to the same Charm account.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := openCharm(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintln(out, "Run 'searchqa sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", client.Host())

			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := openCharm(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, "Syncing...")
			}
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(out, "Sync complete")
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local transcript data",
		Long: `Completely wipe all local Charm data.

WARNING: This deletes all locally cached transcripts. Your cloud data
remains intact and will be re-synced on next access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !confirm {
				fmt.Fprintln(out, "This will wipe ALL local data!")
				fmt.Fprintln(out, "Run with --confirm to proceed")
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := openCharm(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Fprintln(out, "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := openCharm(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			out := cmd.OutOrStdout()
			if keys == "" {
				fmt.Fprintln(out, "No authorized keys found")
				return nil
			}

			fmt.Fprintln(out, "Authorized SSH keys:")
			fmt.Fprintln(out, keys)

			return nil
		},
	}
}
