package panelctl

import (
	"context"
	"fmt"

	"github.com/panelctl/panelctl/internal/inspect"
	"github.com/spf13/cobra"
)

var inspectServiceCmd = &cobra.Command{
	Use:   "inspect-service <service> [project]",
	Short: "Show a service's configuration with secrets redacted",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		client := newClient(target, loadSecrets())
		service := args[0]
		project := projectOrDefault(args, 1, target)

		raw, err := client.InspectService(context.Background(), project, service)
		if err != nil {
			fatal(err)
		}

		out, err := inspect.Render(raw)
		if err != nil {
			fatal(err)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectServiceCmd)
}
