package inspect

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderRedactsSecretFields(t *testing.T) {
	raw := json.RawMessage(`{
		"name": "codex-a",
		"token": "super-secret",
		"deploymentUrl": "https://deploy.example.com/hook/abc123",
		"env": "DB_PASSWORD=hunter2",
		"source": {"type": "image", "image": "nginx:1.27"},
		"children": [{"token": "nested-secret", "name": "child"}]
	}`)

	out, err := Render(raw)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, forbidden := range []string{"token", "super-secret", "deploy.example.com", "hunter2", "nested-secret"} {
		if strings.Contains(out, forbidden) {
			t.Errorf("rendered output leaks %q:\n%s", forbidden, out)
		}
	}
	for _, expected := range []string{"codex-a", "nginx:1.27", "child"} {
		if !strings.Contains(out, expected) {
			t.Errorf("rendered output missing %q:\n%s", expected, out)
		}
	}
}

func TestRenderMalformedResult(t *testing.T) {
	if _, err := Render(json.RawMessage(`not json`)); err == nil {
		t.Fatal("expected error for malformed result")
	}
}
