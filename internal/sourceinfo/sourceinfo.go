package sourceinfo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	composeTypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// DetectTargetPort inspects a source tree for a hint of the port the app
// listens on: first a Dockerfile EXPOSE instruction, then a compose file's
// service port. Inference is best-effort; callers fall back to the default
// target when it reports nothing.
func DetectTargetPort(ctx context.Context, tree string) (int, bool) {
	if port, ok := dockerfileExpose(tree); ok {
		return port, true
	}
	return composeTarget(ctx, tree)
}

func dockerfileExpose(tree string) (int, bool) {
	content, err := os.ReadFile(filepath.Join(tree, "Dockerfile"))
	if err != nil {
		return 0, false
	}

	ast, err := parser.Parse(strings.NewReader(string(content)))
	if err != nil {
		return 0, false
	}

	for _, child := range ast.AST.Children {
		if !strings.EqualFold(child.Value, "EXPOSE") {
			continue
		}
		for n := child.Next; n != nil; n = n.Next {
			// EXPOSE arguments look like "8080" or "8080/tcp"
			spec := strings.SplitN(n.Value, "/", 2)[0]
			if port, err := strconv.Atoi(spec); err == nil && port > 0 {
				return port, true
			}
		}
	}
	return 0, false
}

var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

func composeTarget(ctx context.Context, tree string) (int, bool) {
	var composePath string
	for _, name := range composeFileNames {
		path := filepath.Join(tree, name)
		if _, err := os.Stat(path); err == nil {
			composePath = path
			break
		}
	}
	if composePath == "" {
		return 0, false
	}

	details := composeTypes.ConfigDetails{
		WorkingDir:  tree,
		ConfigFiles: []composeTypes.ConfigFile{{Filename: composePath}},
	}
	project, err := loader.LoadWithContext(ctx, details, func(options *loader.Options) {
		options.SetProjectName(filepath.Base(tree), true)
	})
	if err != nil {
		return 0, false
	}

	for _, svc := range project.Services {
		for _, p := range svc.Ports {
			if p.Target > 0 {
				return int(p.Target), true
			}
		}
	}
	return 0, false
}
