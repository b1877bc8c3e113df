package panelctl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var destroyYes bool

var destroyServiceCmd = &cobra.Command{
	Use:   "destroy-service <service> [project]",
	Short: "Destroy a service and everything it runs",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name := args[0]
		requireGuard(name, target)

		if !destroyYes {
			fmt.Fprintln(os.Stderr, "destroy-service is irreversible; re-run with --yes to confirm")
			os.Exit(1)
		}

		client := newClient(target, loadSecrets())
		project := projectOrDefault(args, 1, target)

		if err := client.DestroyService(context.Background(), project, name); err != nil {
			fatal(err)
		}
		fmt.Printf("Destroyed %s/%s\n", project, name)
	},
}

func init() {
	destroyServiceCmd.Flags().BoolVar(&destroyYes, "yes", false, "confirm destruction")
	rootCmd.AddCommand(destroyServiceCmd)
}
