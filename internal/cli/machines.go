package cli

import (
	"fmt"

	"github.com/me/gogrid/pkg/model"
	"github.com/spf13/cobra"
)

func newMachinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machines",
		Short: "Manage grid machines",
	}
	cmd.AddCommand(newMachinesListCmd(), newMachinesAddCmd(), newMachinesRemoveCmd(), newMachinesJobsCmd())
	return cmd
}

func newMachinesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered machines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/machines")
			if err != nil {
				return fmt.Errorf("list machines: %w", err)
			}

			var machines []model.MachineView
			if err := decodeData(resp, &machines); err != nil {
				return err
			}

			if len(machines) == 0 {
				fmt.Println("No machines registered.")
				return nil
			}
			fmt.Printf("%-6s %-20s %-10s %-12s %-12s %s\n", "ID", "NAME", "JOBS", "RAM (MB)", "DISK (MB)", "SCORE")
			for _, m := range machines {
				fmt.Printf("%-6d %-20s %d/%-8d %-12d %-12d %.0f\n",
					m.ID, m.Name, m.CurrentJobs, m.MaxJobs, m.AvailableRAM, m.AvailableDisk, m.Score)
			}
			return nil
		},
	}
}

func newMachinesAddCmd() *cobra.Command {
	var maxJobs, ram, disk uint32
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/machines", map[string]any{
				"name":     args[0],
				"max_jobs": maxJobs,
				"ram":      ram,
				"disk":     disk,
			})
			if err != nil {
				return fmt.Errorf("add machine: %w", err)
			}

			var m model.MachineView
			if err := decodeData(resp, &m); err != nil {
				return err
			}
			fmt.Printf("Machine %q registered with id %d\n", m.Name, m.ID)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&maxJobs, "max-jobs", 1, "Concurrent job slots")
	cmd.Flags().Uint32Var(&ram, "ram", 1024, "RAM in MB")
	cmd.Flags().Uint32Var(&disk, "disk", 10240, "Disk in MB")
	return cmd
}

func newMachinesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a machine by id (its jobs go with it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/machines/" + args[0]); err != nil {
				return fmt.Errorf("remove machine: %w", err)
			}
			fmt.Printf("Machine %s removed\n", args[0])
			return nil
		},
	}
}

func newMachinesJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs <id>",
		Short: "List the jobs a machine currently owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/machines/" + args[0] + "/jobs")
			if err != nil {
				return fmt.Errorf("list machine jobs: %w", err)
			}

			var jobs []model.JobView
			if err := decodeData(resp, &jobs); err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs on this machine.")
				return nil
			}
			fmt.Printf("%-20s %-12s %-12s %s\n", "NAME", "RAM (MB)", "DISK (MB)", "PROGRESS")
			for _, j := range jobs {
				progress := "running"
				if j.Duration > 0 {
					progress = fmt.Sprintf("%d/%d ms", j.Elapsed, j.Duration)
				}
				fmt.Printf("%-20s %-12d %-12d %s\n", j.Name, j.RequiredRAM, j.RequiredDisk, progress)
			}
			return nil
		},
	}
}
