package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func entryNames(t *testing.T, data []byte) []string {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	tr := tar.NewReader(gz)

	var names []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar: %v", err)
		}
		names = append(names, header.Name)
	}
	return names
}

func TestPackExcludesLocalOnlyFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dockerfile"), "FROM nginx")
	writeFile(t, filepath.Join(root, "app", "main.py"), "print('hi')")
	writeFile(t, filepath.Join(root, ".env"), "SECRET=x")
	writeFile(t, filepath.Join(root, ".env.production"), "SECRET=y")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: main")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "{}")

	var buf bytes.Buffer
	if err := Pack(root, &buf); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	names := entryNames(t, buf.Bytes())
	want := []string{"Dockerfile", "app", "app/main.py"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
}

func TestPackIsRepeatable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dockerfile"), "FROM nginx")
	writeFile(t, filepath.Join(root, "src", "a.go"), "package a")
	writeFile(t, filepath.Join(root, "src", "b.go"), "package a")

	var first, second bytes.Buffer
	if err := Pack(root, &first); err != nil {
		t.Fatalf("first Pack failed: %v", err)
	}
	if err := Pack(root, &second); err != nil {
		t.Fatalf("second Pack failed: %v", err)
	}

	if !reflect.DeepEqual(entryNames(t, first.Bytes()), entryNames(t, second.Bytes())) {
		t.Error("packing the same tree twice produced different entry sequences")
	}
}

func TestPackToTempFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dockerfile"), "FROM nginx")

	path, err := PackToTempFile(root)
	if err != nil {
		t.Fatalf("PackToTempFile failed: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if names := entryNames(t, data); len(names) != 1 || names[0] != "Dockerfile" {
		t.Errorf("unexpected entries: %v", names)
	}
}
