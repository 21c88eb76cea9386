package cli

import (
	"encoding/json"
	"fmt"

	"github.com/me/gogrid/pkg/model"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "query <expression>",
		Short: "Query entities with a JavaScript predicate",
		Long: `Query evaluates a JavaScript expression against every entity of the chosen
kind and prints the matches. The entity is bound to a variable named after
the kind's singular form, e.g.:

  gridctl query --kind machines 'machine.current_jobs < machine.max_jobs'
  gridctl query --kind jobs 'job.elapsed_ms > 1000'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/query", model.QueryRequest{
				Kind:       kind,
				Expression: args[0],
			})
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			var results []map[string]any
			if err := decodeData(resp, &results); err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, m := range results {
				line, err := json.Marshal(m)
				if err != nil {
					return fmt.Errorf("format result: %w", err)
				}
				fmt.Println(string(line))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "machines", "Entity kind: users, machines, or jobs")
	return cmd
}
