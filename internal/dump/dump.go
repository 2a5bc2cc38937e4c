// Package dump persists the resolved run record next to the training
// artifacts. The snapshot is what the launch actually used — after defaults
// and validation — so a run directory is self-describing and two launches
// from the same manifest can be diffed byte-for-byte.
package dump

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/tunegridgo/internal/model"
)

// SnapshotFileName is the name of the resolved-record file written into the
// run's output directory.
const SnapshotFileName = "resolved.yaml"

// WriteResolved creates the run's output directory if needed and writes the
// resolved record snapshot into it. It returns the snapshot path.
func WriteResolved(run *model.Run) (string, error) {
	if err := os.MkdirAll(run.Model.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir for run %q: %w", run.Name, err)
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("failed to marshal resolved record for run %q: %w", run.Name, err)
	}

	path := filepath.Join(run.Model.OutputDir, SnapshotFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
