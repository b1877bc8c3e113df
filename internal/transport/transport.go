package transport

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/archive"
)

// stagingRoot is the fixed directory on the panel host where uploaded code
// archives are handed off. One archive per service, overwritten on every
// push; there is no history.
const stagingRoot = "/var/lib/panel/uploads"

// StagingPath is where a service's code archive lives on the panel host.
func StagingPath(service string) string {
	return path.Join(stagingRoot, service, "code.tar.gz")
}

// Uploader moves one local file to a path on the panel host.
type Uploader interface {
	Put(ctx context.Context, localPath, remotePath string) error
}

// Deliver packages the source tree, transports it to the service's staging
// path, and registers the remote path with the panel. Registration and the
// subsequent deploy are separate sequential calls; a crash in between leaves
// a registered-but-undeployed archive, which the next run overwrites.
func Deliver(ctx context.Context, caller api.Caller, up Uploader, project, service, tree string) (string, error) {
	local, err := archive.PackToTempFile(tree)
	if err != nil {
		return "", err
	}
	defer os.Remove(local)

	remote := StagingPath(service)
	if err := up.Put(ctx, local, remote); err != nil {
		return "", fmt.Errorf("upload archive for %s: %w", service, err)
	}

	payload := struct {
		api.ServiceRef
		ArchivePath string `json:"archivePath"`
	}{api.ServiceRef{ProjectName: project, ServiceName: service}, remote}
	if _, err := caller.Call(ctx, api.OpUploadCodeArchive, payload); err != nil {
		return "", fmt.Errorf("register archive for %s: %w", service, err)
	}

	return remote, nil
}
