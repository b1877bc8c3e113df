package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Excluded names never enter the archive: version-control metadata, local
// secrets, local-only tooling state, and dependency caches that the panel
// rebuilds anyway.
var excludedNames = []string{
	".git",
	".panelctl",
	"node_modules",
	"vendor",
	"__pycache__",
	".DS_Store",
}

func excluded(name string) bool {
	for _, ex := range excludedNames {
		if name == ex {
			return true
		}
	}
	// .env and all its variants (.env.local, .env.production, ...)
	return strings.HasPrefix(name, ".env")
}

// Pack writes a gzipped tarball of the tree rooted at root. Entries carry
// paths relative to root so the panel unpacks the tree in place. The walk
// is lexical, so packing the same tree twice produces the same entry order.
func Pack(root string, w io.Writer) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if excluded(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pack %s: %w", root, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finish tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finish gzip: %w", err)
	}
	return nil
}

// PackToTempFile packs the tree into a temporary file and returns its path.
// The caller removes the file once the archive has been transported.
func PackToTempFile(root string) (string, error) {
	f, err := os.CreateTemp("", "panelctl-code-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}

	if err := Pack(root, f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp archive: %w", err)
	}
	return f.Name(), nil
}
