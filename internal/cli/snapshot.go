package cli

import (
	"fmt"

	"github.com/me/gogrid/pkg/model"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save or restore the grid state snapshot",
	}

	runSnapshotOp := func(op string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/snapshot/"+op, nil)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", op, err)
			}
			var info model.SnapshotInfo
			if err := decodeData(resp, &info); err != nil {
				return err
			}
			fmt.Printf("Snapshot %sd: %s (%d users, %d machines)\n", op, info.Path, info.Users, info.Machines)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save",
			Short: "Write the current grid state to the snapshot file",
			Args:  cobra.NoArgs,
			RunE:  runSnapshotOp("save"),
		},
		&cobra.Command{
			Use:   "load",
			Short: "Replace the grid state with the snapshot file",
			Args:  cobra.NoArgs,
			RunE:  runSnapshotOp("load"),
		},
	)
	return cmd
}
