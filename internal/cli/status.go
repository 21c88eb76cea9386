package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show grid health and entity counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/health")
			if err != nil {
				return fmt.Errorf("get health: %w", err)
			}

			var data struct {
				Status   string `json:"status"`
				Version  string `json:"version"`
				Uptime   string `json:"uptime"`
				Users    int    `json:"users"`
				Machines int    `json:"machines"`
				Jobs     int    `json:"jobs"`
			}
			if err := decodeData(resp, &data); err != nil {
				return err
			}

			fmt.Printf("Status:   %s (v%s, up %s)\n", data.Status, data.Version, data.Uptime)
			fmt.Printf("Users:    %d\n", data.Users)
			fmt.Printf("Machines: %d\n", data.Machines)
			fmt.Printf("Jobs:     %d\n", data.Jobs)
			return nil
		},
	}
}
