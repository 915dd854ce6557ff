package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Nao-Mk2/showjobs/internal/model"
)

// logPattern matches daily logs such as 20161026 and 20161026.gz.
const logPattern = "20*"

// Dir reads job logs from a local directory such as TORQUE's job_logs.
type Dir struct {
	Root string
}

// NewDir returns a Source over the logs directly inside root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) List(ctx context.Context) ([]model.LogFile, error) {
	if _, err := os.Stat(d.Root); err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	matches, err := doublestar.Glob(os.DirFS(d.Root), logPattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.Root, err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(d.Root, filepath.FromSlash(m))
	}
	return collect(paths), nil
}

func (d *Dir) Open(ctx context.Context, f model.LogFile) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	return decompress(f, file)
}
