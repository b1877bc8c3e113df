package panelctl

import (
	"context"
	"fmt"

	"github.com/panelctl/panelctl/internal/envfile"
	"github.com/panelctl/panelctl/internal/service"
	"github.com/spf13/cobra"
)

var setImageCmd = &cobra.Command{
	Use:   "set-image <service> <image> [project]",
	Short: "Point an existing image-sourced service at a new image",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name, image := args[0], args[1]
		requireGuard(name, target)

		client := newClient(target, loadSecrets())
		spec := service.Spec{
			Name:    name,
			Project: projectOrDefault(args, 2, target),
			Source:  service.ImageSource(image),
		}

		// The service must already exist; reconcile against a list that
		// contains it so the action is always the image update.
		action := service.Reconcile(spec, []string{name})
		if err := service.Apply(context.Background(), client, action); err != nil {
			fatal(err)
		}
		fmt.Printf("Updated %s/%s to %s\n", spec.Project, name, image)
	},
}

var setEnvFileCmd = &cobra.Command{
	Use:   "set-env-file <service> <file> [project]",
	Short: "Replace a service's environment from a dotenv file",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name, file := args[0], args[1]
		requireGuard(name, target)

		env, err := envfile.Render(file)
		if err != nil {
			fatal(err)
		}

		client := newClient(target, loadSecrets())
		project := projectOrDefault(args, 2, target)
		if err := client.UpdateEnv(context.Background(), project, name, env); err != nil {
			fatal(err)
		}
		fmt.Printf("Updated environment of %s/%s from %s\n", project, name, file)
	},
}

func init() {
	rootCmd.AddCommand(setImageCmd)
	rootCmd.AddCommand(setEnvFileCmd)
}
