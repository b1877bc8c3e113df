package panelctl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/spf13/cobra"
)

var listProjectsCmd = &cobra.Command{
	Use:   "list-projects",
	Short: "List projects on the panel",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		client := newClient(target, loadSecrets())

		raw, err := client.ListProjects(context.Background())
		if err != nil {
			fatal(err)
		}

		var projects []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &projects); err != nil {
			fatal(fmt.Errorf("decode project list: %w", err))
		}

		for _, p := range projects {
			fmt.Println(p.Name)
		}
	},
}

var listServicesCmd = &cobra.Command{
	Use:   "list-services [project]",
	Short: "List services in a project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		client := newClient(target, loadSecrets())
		project := projectOrDefault(args, 0, target)

		names, err := api.ProjectServiceNames(context.Background(), client, project)
		if err != nil {
			fatal(err)
		}

		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listProjectsCmd)
	rootCmd.AddCommand(listServicesCmd)
}
