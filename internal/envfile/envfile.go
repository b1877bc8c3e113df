package envfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Render parses a dotenv file and renders it as the KEY=VALUE block the
// panel's updateEnv operation expects. Keys are sorted so the same file
// always produces the same block.
func Render(path string) (string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return "", fmt.Errorf("read env file %s: %w", path, err)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+env[k])
	}
	return strings.Join(lines, "\n"), nil
}
