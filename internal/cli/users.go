package cli

import (
	"fmt"

	"github.com/me/gogrid/pkg/model"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage grid users",
	}
	cmd.AddCommand(newUsersListCmd(), newUsersAddCmd(), newUsersRemoveCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/users")
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			var users []model.UserView
			if err := decodeData(resp, &users); err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users registered.")
				return nil
			}
			fmt.Printf("%-6s %-20s %-8s %s\n", "ID", "NAME", "QUOTA", "JOBS CREATED")
			for _, u := range users {
				quota := fmt.Sprint(u.Quota)
				if u.Quota == 0 {
					quota = "-"
				}
				fmt.Printf("%-6d %-20s %-8s %d\n", u.ID, u.Name, quota, u.JobsCreated)
			}
			return nil
		},
	}
}

func newUsersAddCmd() *cobra.Command {
	var quota uint32
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/users", map[string]any{
				"name":  args[0],
				"quota": quota,
			})
			if err != nil {
				return fmt.Errorf("add user: %w", err)
			}

			var u model.UserView
			if err := decodeData(resp, &u); err != nil {
				return err
			}
			fmt.Printf("User %q registered with id %d\n", u.Name, u.ID)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&quota, "quota", 0, "Job quota (0 = unlimited)")
	return cmd
}

func newUsersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/users/" + args[0]); err != nil {
				return fmt.Errorf("remove user: %w", err)
			}
			fmt.Printf("User %s removed\n", args[0])
			return nil
		},
	}
}
