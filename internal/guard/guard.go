package guard

import "strings"

// Allow reports whether name is managed by this tool: it must start with
// the configured prefix followed by a hyphen. Every mutating command checks
// this before issuing any network request, so a misconfigured invocation
// can never touch a service that belongs to someone else on a shared panel.
func Allow(name, prefix string) bool {
	if name == "" || prefix == "" {
		return false
	}
	return strings.HasPrefix(name, prefix+"-")
}
