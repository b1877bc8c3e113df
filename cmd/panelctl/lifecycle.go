package panelctl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// The three lifecycle verbs map to exactly three panel operations; there is
// no generic verb-to-operation derivation.
var startServiceCmd = lifecycleCommand("start-service", "Start a stopped service", func(ctx context.Context, client serviceLifecycle, project, name string) error {
	return client.StartService(ctx, project, name)
})

var stopServiceCmd = lifecycleCommand("stop-service", "Stop a running service", func(ctx context.Context, client serviceLifecycle, project, name string) error {
	return client.StopService(ctx, project, name)
})

var restartServiceCmd = lifecycleCommand("restart-service", "Restart a service", func(ctx context.Context, client serviceLifecycle, project, name string) error {
	return client.RestartService(ctx, project, name)
})

type serviceLifecycle interface {
	StartService(ctx context.Context, project, service string) error
	StopService(ctx context.Context, project, service string) error
	RestartService(ctx context.Context, project, service string) error
}

func lifecycleCommand(verb, short string, run func(ctx context.Context, client serviceLifecycle, project, name string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <service> [project]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			target := loadTarget()
			name := args[0]
			requireGuard(name, target)

			client := newClient(target, loadSecrets())
			project := projectOrDefault(args, 1, target)

			if err := run(context.Background(), client, project, name); err != nil {
				fatal(err)
			}
			fmt.Printf("%s: %s/%s\n", verb, project, name)
		},
	}
}

func init() {
	rootCmd.AddCommand(startServiceCmd)
	rootCmd.AddCommand(stopServiceCmd)
	rootCmd.AddCommand(restartServiceCmd)
}
