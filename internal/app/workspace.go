package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/bhavpulse/config"
)

// Workspace is the on-disk layout the service reads and writes.
//
// Fields:
//   - SourceDir: where archives are uploaded and read from.
//   - ScratchDir: parent of the per-archive extraction dirs.
//   - OutputDir: directory of the combined table.
type Workspace struct {
	SourceDir  string
	ScratchDir string
	OutputDir  string
}

// OpenWorkspace creates every directory named in cfg.Paths if missing.
//
// Behavior:
//   - Directories are created with 0755 permissions, parents included.
//   - Fails when a path exists but is not a directory or cannot be created.
//
// Example usage:
//
//	ws, err := app.OpenWorkspace(config.AppConfig)
//	if err != nil {
//	    log.Fatal(err)
//	}
func OpenWorkspace(cfg config.Config) (*Workspace, error) {
	ws := &Workspace{
		SourceDir:  cfg.Paths.SourceDir,
		ScratchDir: cfg.Paths.ScratchDir,
		OutputDir:  filepath.Dir(cfg.Paths.MergedFile),
	}
	for _, dir := range []string{ws.SourceDir, ws.ScratchDir, ws.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return ws, nil
}

// Ready reports whether the source directory can be listed.
func (w *Workspace) Ready() error {
	fi, err := os.Stat(w.SourceDir)
	if err != nil {
		return fmt.Errorf("source dir: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("source dir %s is not a directory", w.SourceDir)
	}
	if _, err := os.ReadDir(w.SourceDir); err != nil {
		return fmt.Errorf("source dir: %w", err)
	}
	return nil
}

// workspaceOpener is swapped in tests.
var workspaceOpener = OpenWorkspace
