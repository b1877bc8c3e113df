package panelctl

import (
	"context"
	"fmt"

	"github.com/panelctl/panelctl/internal/deploy"
	"github.com/panelctl/panelctl/internal/transport"
	"github.com/spf13/cobra"
)

var uploadArchiveCmd = &cobra.Command{
	Use:   "upload-archive <service> <path> [project]",
	Short: "Package a source tree, stage it on the panel host, and deploy",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name, tree := args[0], args[1]
		requireGuard(name, target)

		secrets := loadSecrets()
		client := newClient(target, secrets)
		project := projectOrDefault(args, 2, target)
		ctx := context.Background()

		uploader, err := newUploader(target, secrets)
		if err != nil {
			fatal(err)
		}

		remote, err := transport.Deliver(ctx, client, uploader, project, name, tree)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Staged code archive at %s\n", remote)

		if err := deploy.NewTrigger(client).Deploy(ctx, project, name); err != nil {
			fatal(err)
		}
		fmt.Printf("Deployed %s/%s\n", project, name)
	},
}

var deployServiceCmd = &cobra.Command{
	Use:   "deploy-service <service> [project]",
	Short: "Trigger a deploy of an existing service",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name := args[0]
		requireGuard(name, target)

		client := newClient(target, loadSecrets())
		project := projectOrDefault(args, 1, target)

		if err := deploy.NewTrigger(client).Deploy(context.Background(), project, name); err != nil {
			fatal(err)
		}
		fmt.Printf("Deployed %s/%s\n", project, name)
	},
}

func init() {
	rootCmd.AddCommand(uploadArchiveCmd)
	rootCmd.AddCommand(deployServiceCmd)
}
