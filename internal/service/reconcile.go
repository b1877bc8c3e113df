package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/panelctl/panelctl/internal/api"
)

// ActionKind is the reconciler's verdict for one spec.
type ActionKind int

const (
	// ActionNone means the service exists and carries no updatable config
	// here (upload-sourced services are only ever created; pushing a new
	// archive and redeploying is handled downstream).
	ActionNone ActionKind = iota
	ActionCreate
	ActionUpdate
)

// Action pairs an RPC operation with its payload, ready for dispatch.
type Action struct {
	Kind      ActionKind
	Operation string
	Payload   any
}

const defaultTargetPort = 80

type sourcePayload struct {
	Type  SourceType `json:"type"`
	Image string     `json:"image,omitempty"`
}

type buildPayload struct {
	Type string `json:"type"`
	File string `json:"file"`
}

type portPayload struct {
	Published int `json:"published"`
	Target    int `json:"target"`
}

type createPayload struct {
	ProjectName string        `json:"projectName"`
	ServiceName string        `json:"serviceName"`
	Source      sourcePayload `json:"source"`
	Build       *buildPayload `json:"build,omitempty"`
	Domains     []string      `json:"domains"`
	Ports       []portPayload `json:"ports,omitempty"`
	Mounts      []string      `json:"mounts"`
	Resources   Resources     `json:"resources"`
}

type setImagePayload struct {
	ProjectName string `json:"projectName"`
	ServiceName string `json:"serviceName"`
	Image       string `json:"image"`
}

// Reconcile decides create vs. update by checking the spec's name against
// the service names the panel reported for the project. The existing list
// must have been fetched in this same invocation; it can still be stale by
// the time the action runs, which is why a failed create is simply re-run
// as a whole command.
func Reconcile(spec Spec, existing []string) Action {
	if slices.Contains(existing, spec.Name) {
		if spec.Source.Type == SourceImage {
			return Action{
				Kind:      ActionUpdate,
				Operation: api.OpUpdateSourceImage,
				Payload: setImagePayload{
					ProjectName: spec.Project,
					ServiceName: spec.Name,
					Image:       spec.Source.Image,
				},
			}
		}
		return Action{Kind: ActionNone}
	}

	payload := createPayload{
		ProjectName: spec.Project,
		ServiceName: spec.Name,
		Source:      sourcePayload{Type: spec.Source.Type},
		Domains:     emptyIfNil(spec.Domains),
		Ports:       buildPorts(spec.Ports),
		Mounts:      emptyIfNil(spec.Mounts),
		Resources:   DefaultResources,
	}

	switch spec.Source.Type {
	case SourceImage:
		payload.Source.Image = spec.Source.Image
	case SourceUpload:
		payload.Build = &buildPayload{Type: "dockerfile", File: spec.Source.BuildFile}
	}

	return Action{Kind: ActionCreate, Operation: api.OpCreateService, Payload: payload}
}

// buildPorts keeps only ports with a published side and fills in the
// default target. A spec with no published port yields no ports key at all.
func buildPorts(ports []Port) []portPayload {
	var out []portPayload
	for _, p := range ports {
		if p.Published == 0 {
			continue
		}
		target := p.Target
		if target == 0 {
			target = defaultTargetPort
		}
		out = append(out, portPayload{Published: p.Published, Target: target})
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Apply dispatches the action through the API client. Creation failures
// are surfaced verbatim; there is nothing to roll back because a failed
// create leaves no service behind on the panel.
func Apply(ctx context.Context, caller api.Caller, action Action) error {
	switch action.Kind {
	case ActionNone:
		return nil
	case ActionCreate:
		if _, err := caller.Call(ctx, action.Operation, action.Payload); err != nil {
			return fmt.Errorf("create service: %w", err)
		}
		return nil
	case ActionUpdate:
		if _, err := caller.Call(ctx, action.Operation, action.Payload); err != nil {
			return fmt.Errorf("update service: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown action kind %d", action.Kind)
	}
}
