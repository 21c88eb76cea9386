package cli

import (
	"fmt"

	"github.com/me/gogrid/pkg/model"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		ram      uint32
		disk     uint32
		duration uint32
		userID   uint32
	)
	cmd := &cobra.Command{
		Use:   "submit <name>",
		Short: "Submit a job for placement",
		Long: `Submit offers a job to the grid scheduler. With --user the submission is
attributed to that user and gated by their quota. The scheduler commits to
the first machine that accepts; if none does, the submission fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/jobs", model.SubmitRequest{
				Name:         args[0],
				RequiredRAM:  ram,
				RequiredDisk: disk,
				Duration:     duration,
				UserID:       userID,
			})
			if err != nil {
				return fmt.Errorf("submit job: %w", err)
			}

			var j model.JobView
			if err := decodeData(resp, &j); err != nil {
				return err
			}
			fmt.Printf("Job %q placed on machine %d\n", j.Name, j.MachineID)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&ram, "ram", 0, "Required RAM in MB")
	cmd.Flags().Uint32Var(&disk, "disk", 0, "Required disk in MB")
	cmd.Flags().Uint32Var(&duration, "duration", 0, "Runtime in ms (0 = indefinite)")
	cmd.Flags().Uint32Var(&userID, "user", 0, "Submitting user id (0 = unattributed)")
	return cmd
}
