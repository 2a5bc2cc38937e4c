package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tunegridgo/internal/model"
)

func snapshotRun(outputDir string) *model.Run {
	run := &model.Run{
		Name:    "finetune_predictor",
		Trainer: "train_pattern_predictor.py",
		Model: model.Model{
			NameOrPath: "google/switch-base-64",
			OutputDir:  outputDir,
		},
		Data: &model.Data{TrainPath: "data/train.json"},
		Schedule: model.Schedule{
			NumTrainEpochs: 3,
		},
		Optimizer: model.Optimizer{LearningRate: 2e-5},
	}
	run.Normalize()
	return run
}

func TestWriteResolved_CreatesOutputDirAndSnapshot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outputDir := filepath.Join(t.TempDir(), "checkpoints", "pattern-predictor")
	run := snapshotRun(outputDir)

	// --- Act ---
	path, err := WriteResolved(run)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outputDir, SnapshotFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "name_or_path: google/switch-base-64")
	require.Contains(t, string(data), "num_train_epochs: 3")
	require.Contains(t, string(data), "python: python3")
}

func TestWriteResolved_IsDeterministic(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outputDir := filepath.Join(t.TempDir(), "out")
	run := snapshotRun(outputDir)

	// --- Act ---
	path, err := WriteResolved(run)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	path, err = WriteResolved(run)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	// --- Assert ---
	require.Equal(t, first, second)
}
