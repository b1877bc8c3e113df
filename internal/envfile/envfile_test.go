package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.deploy")
	content := "B_SECOND=two\nA_FIRST=one\n# a comment\nQUOTED=\"hello world\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "A_FIRST=one\nB_SECOND=two\nQUOTED=hello world"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderMissingFile(t *testing.T) {
	if _, err := Render(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
