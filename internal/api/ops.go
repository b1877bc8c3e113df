package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Caller is the slice of Client the other packages depend on, so tests can
// substitute a scripted transport.
type Caller interface {
	Call(ctx context.Context, operation string, payload any) (json.RawMessage, error)
}

// Operation names understood by the panel. Start/stop/restart are exactly
// these three; they are mapped explicitly rather than derived from the verb.
const (
	OpListProjects      = "projects.listProjects"
	OpInspectProject    = "projects.inspectProject"
	OpInspectService    = "services.app.inspectService"
	OpCreateService     = "services.app.createService"
	OpUpdateSourceImage = "services.app.updateSourceImage"
	OpUpdateEnv         = "services.app.updateEnv"
	OpUploadCodeArchive = "services.app.uploadCodeArchive"
	OpDeployService     = "services.app.deployService"
	OpStartService      = "services.app.startService"
	OpStopService       = "services.app.stopService"
	OpRestartService    = "services.app.restartService"
	OpDestroyService    = "services.app.destroyService"
)

// ServiceRef identifies one service within a project. It is the payload for
// every per-service operation that takes no other arguments.
type ServiceRef struct {
	ProjectName string `json:"projectName"`
	ServiceName string `json:"serviceName"`
}

func (c *Client) ListProjects(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, OpListProjects, nil)
}

func (c *Client) InspectProject(ctx context.Context, project string) (json.RawMessage, error) {
	return c.Call(ctx, OpInspectProject, map[string]string{"projectName": project})
}

func (c *Client) InspectService(ctx context.Context, project, service string) (json.RawMessage, error) {
	return c.Call(ctx, OpInspectService, ServiceRef{ProjectName: project, ServiceName: service})
}

func (c *Client) UpdateEnv(ctx context.Context, project, service, env string) error {
	payload := struct {
		ServiceRef
		Env string `json:"env"`
	}{ServiceRef{project, service}, env}
	_, err := c.Call(ctx, OpUpdateEnv, payload)
	return err
}

func (c *Client) UploadCodeArchive(ctx context.Context, project, service, archivePath string) error {
	payload := struct {
		ServiceRef
		ArchivePath string `json:"archivePath"`
	}{ServiceRef{project, service}, archivePath}
	_, err := c.Call(ctx, OpUploadCodeArchive, payload)
	return err
}

func (c *Client) StartService(ctx context.Context, project, service string) error {
	_, err := c.Call(ctx, OpStartService, ServiceRef{project, service})
	return err
}

func (c *Client) StopService(ctx context.Context, project, service string) error {
	_, err := c.Call(ctx, OpStopService, ServiceRef{project, service})
	return err
}

func (c *Client) RestartService(ctx context.Context, project, service string) error {
	_, err := c.Call(ctx, OpRestartService, ServiceRef{project, service})
	return err
}

func (c *Client) DestroyService(ctx context.Context, project, service string) error {
	_, err := c.Call(ctx, OpDestroyService, ServiceRef{project, service})
	return err
}

// ProjectServiceNames fetches the project fresh from the panel and returns
// the names of the services it currently holds. This is the membership test
// the reconciler runs before every create-or-update decision; it is never
// cached between invocations.
func ProjectServiceNames(ctx context.Context, c Caller, project string) ([]string, error) {
	raw, err := c.Call(ctx, OpInspectProject, map[string]string{"projectName": project})
	if err != nil {
		return nil, fmt.Errorf("inspect project %s: %w", project, err)
	}

	var data struct {
		Services []struct {
			Name string `json:"name"`
		} `json:"services"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode project %s services: %w", project, err)
	}

	names := make([]string, 0, len(data.Services))
	for _, s := range data.Services {
		names = append(names, s.Name)
	}
	return names, nil
}
