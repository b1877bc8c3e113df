package panelctl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/config"
	"github.com/panelctl/panelctl/internal/deploy"
	"github.com/panelctl/panelctl/internal/ports"
	"github.com/panelctl/panelctl/internal/service"
	"github.com/panelctl/panelctl/internal/sourceinfo"
	"github.com/panelctl/panelctl/internal/transport"
	"github.com/spf13/cobra"
)

var uploadSourcePath string

var createImageServiceCmd = &cobra.Command{
	Use:   "create-image-service <service> <image> [project] [published] [target]",
	Short: "Create or update an image-sourced service and deploy it",
	Args:  cobra.RangeArgs(2, 5),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name, image := args[0], args[1]
		requireGuard(name, target)

		secrets := loadSecrets()
		client := newClient(target, secrets)
		ctx := context.Background()

		spec := service.Spec{
			Name:    name,
			Project: projectOrDefault(args, 2, target),
			Source:  service.ImageSource(image),
			Ports:   portArgs(args, 3, 4),
		}

		if err := reconcileAndApply(ctx, client, target, &spec); err != nil {
			fatal(err)
		}
		if err := deploy.NewTrigger(client).Deploy(ctx, spec.Project, spec.Name); err != nil {
			fatal(err)
		}
		fmt.Printf("Deployed %s/%s\n", spec.Project, spec.Name)
	},
}

var createUploadServiceCmd = &cobra.Command{
	Use:   "create-upload-service <service> [project] [published] [target]",
	Short: "Create an upload-sourced service, push its code archive, and deploy it",
	Args:  cobra.RangeArgs(1, 4),
	Run: func(cmd *cobra.Command, args []string) {
		target := loadTarget()
		name := args[0]
		requireGuard(name, target)

		secrets := loadSecrets()
		client := newClient(target, secrets)
		ctx := context.Background()

		spec := service.Spec{
			Name:    name,
			Project: projectOrDefault(args, 1, target),
			Source:  service.UploadSource(""),
			Ports:   portArgs(args, 2, 3),
		}

		// No explicit target port: see if the source tree says which one
		// the app listens on before the payload falls back to 80.
		if len(spec.Ports) == 1 && spec.Ports[0].Target == 0 {
			if inferred, ok := sourceinfo.DetectTargetPort(ctx, uploadSourcePath); ok {
				spec.Ports[0].Target = inferred
				fmt.Printf("Inferred target port %d from source tree\n", inferred)
			}
		}

		if err := reconcileAndApply(ctx, client, target, &spec); err != nil {
			fatal(err)
		}

		uploader, err := newUploader(target, secrets)
		if err != nil {
			fatal(err)
		}
		remote, err := transport.Deliver(ctx, client, uploader, spec.Project, spec.Name, uploadSourcePath)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Staged code archive at %s\n", remote)

		if err := deploy.NewTrigger(client).Deploy(ctx, spec.Project, spec.Name); err != nil {
			fatal(err)
		}
		fmt.Printf("Deployed %s/%s\n", spec.Project, spec.Name)
	},
}

// reconcileAndApply runs the existence check against live panel state,
// allocates a published port when the service is new and none was supplied,
// and dispatches the resulting create or update.
func reconcileAndApply(ctx context.Context, client *api.Client, target config.Target, spec *service.Spec) error {
	existing, err := api.ProjectServiceNames(ctx, client, spec.Project)
	if err != nil {
		return err
	}

	action := service.Reconcile(*spec, existing)
	if action.Kind == service.ActionCreate && len(spec.Ports) == 0 {
		port, err := ports.FindFree(target.Host, ports.DefaultRange, ports.DialProber{})
		if err != nil {
			return err
		}
		fmt.Printf("Allocated published port %d\n", port)
		spec.Ports = []service.Port{{Published: port}}
		action = service.Reconcile(*spec, existing)
	}

	switch action.Kind {
	case service.ActionCreate:
		fmt.Printf("Creating service %s/%s\n", spec.Project, spec.Name)
	case service.ActionUpdate:
		fmt.Printf("Updating service %s/%s\n", spec.Project, spec.Name)
	}
	return service.Apply(ctx, client, action)
}

func newUploader(target config.Target, secrets config.Secrets) (transport.Uploader, error) {
	return transport.NewSSHUploader(target.Host, target.SSHPort, target.SSHUser, target.SSHKey, secrets.SSHPassword)
}

// portArgs parses the optional positional [published] [target] pair.
func portArgs(args []string, publishedIdx, targetIdx int) []service.Port {
	if len(args) <= publishedIdx {
		return nil
	}
	published := mustPort(args[publishedIdx])

	port := service.Port{Published: published}
	if len(args) > targetIdx {
		port.Target = mustPort(args[targetIdx])
	}
	return []service.Port{port}
}

func mustPort(arg string) int {
	port, err := strconv.Atoi(arg)
	if err != nil || port <= 0 || port > 65535 {
		fatal(fmt.Errorf("invalid port %q", arg))
	}
	return port
}

func init() {
	createUploadServiceCmd.Flags().StringVar(&uploadSourcePath, "source", ".", "source tree to package and upload")
	rootCmd.AddCommand(createImageServiceCmd)
	rootCmd.AddCommand(createUploadServiceCmd)
}
