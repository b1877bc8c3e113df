package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/panelctl/panelctl/internal/api"
)

// The panel briefly answers "Not found" for a service that was created
// moments ago, before its registration settles. That single known window is
// the only thing retried; everything else fails fast.
const (
	maxAttempts = 10
	backoff     = 2 * time.Second
)

// ErrRetriesExhausted distinguishes a transient window that never closed
// from a single fatal deploy error.
var ErrRetriesExhausted = errors.New("deploy failed after retries")

type deployPayload struct {
	ProjectName  string `json:"projectName"`
	ServiceName  string `json:"serviceName"`
	ForceRebuild bool   `json:"forceRebuild"`
}

// Trigger invokes the panel's deploy action with bounded retry.
type Trigger struct {
	caller api.Caller
	sleep  func(time.Duration)
}

func NewTrigger(caller api.Caller) *Trigger {
	return &Trigger{caller: caller, sleep: time.Sleep}
}

// Deploy issues services.app.deployService until it succeeds, a fatal error
// occurs, or the attempt ceiling is hit. The policy is deliberately a fixed
// 2-second sleep and a ceiling of 10, not a general backoff framework.
func (t *Trigger) Deploy(ctx context.Context, project, service string) error {
	payload := deployPayload{ProjectName: project, ServiceName: service, ForceRebuild: false}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := t.caller.Call(ctx, api.OpDeployService, payload)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return fmt.Errorf("deploy %s/%s: %w", project, service, err)
		}
		if attempt < maxAttempts {
			t.sleep(backoff)
		}
	}

	return fmt.Errorf("%w: %s/%s still not found after %d attempts", ErrRetriesExhausted, project, service, maxAttempts)
}

// isTransient recognizes the post-creation registration lag. Only an RPC
// error whose message mentions "not found" qualifies; transport failures
// and every other panel error are fatal.
func isTransient(err error) bool {
	var rpcErr *api.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return strings.Contains(strings.ToLower(rpcErr.Message), "not found")
}
