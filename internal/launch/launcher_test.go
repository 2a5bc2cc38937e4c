package launch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/tunegridgo/internal/model"
)

func intRef(v int) *int { return &v }

// writeTrainerScript writes a stand-in trainer executed via /bin/sh, so the
// tests exercise the real spawn path without a Python toolchain.
func writeTrainerScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trainer.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o700))
	return path
}

func launchRun(trainer string, nproc int, devices []int) *model.Run {
	run := &model.Run{
		Name:    "finetune_predictor",
		Trainer: trainer,
		Python:  "/bin/sh",
		Model: model.Model{
			NameOrPath: "google/switch-base-64",
			OutputDir:  "unused",
		},
		Data:      &model.Data{TrainPath: "data/train.json"},
		Precision: &model.Precision{},
		Schedule: model.Schedule{
			NumTrainEpochs:     3,
			EvaluationStrategy: model.StrategyNo,
			SaveStrategy:       model.StrategySteps,
			SaveSteps:          intRef(2000),
			SaveTotalLimit:     1,
			LoggingSteps:       intRef(1),
		},
		Batching: &model.Batching{
			PerDeviceTrainBatchSize:   8,
			PerDeviceEvalBatchSize:    8,
			GradientAccumulationSteps: 4,
		},
		Optimizer: model.Optimizer{
			LearningRate:    2e-5,
			LRSchedulerType: model.SchedulerCosine,
		},
		Topology: &model.Topology{NprocPerNode: nproc, Devices: devices},
		Tracking: &model.Tracking{Mode: model.TrackingDisabled},
	}
	return run
}

func TestLaunch_SuccessfulWorker(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	trainer := writeTrainerScript(t, "#!/bin/sh\nexit 0\n")
	run := launchRun(trainer, 1, []int{0})

	// --- Act ---
	err := New(false).Launch(context.Background(), run)

	// --- Assert ---
	require.NoError(t, err)
}

func TestLaunch_PropagatesWorkerExitStatus(t *testing.T) {
	t.Parallel()

	trainer := writeTrainerScript(t, "#!/bin/sh\nexit 3\n")
	run := launchRun(trainer, 1, []int{0})

	err := New(false).Launch(context.Background(), run)

	require.Error(t, err)
	require.Contains(t, err.Error(), `run "finetune_predictor"`)
	require.Contains(t, err.Error(), "worker rank 0")
	require.Contains(t, err.Error(), "exit status 3")
}

func TestLaunch_EachWorkerSeesItsOwnRankAndDevice(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outDir := t.TempDir()
	trainer := writeTrainerScript(t,
		"#!/bin/sh\necho \"$RANK $CUDA_VISIBLE_DEVICES $WORLD_SIZE\" > \"$RANK_DIR/$RANK\"\nexit 0\n")
	run := launchRun(trainer, 2, []int{3, 5})
	run.Env = map[string]string{"RANK_DIR": outDir}

	// --- Act ---
	err := New(false).Launch(context.Background(), run)

	// --- Assert ---
	require.NoError(t, err)

	rank0, err := os.ReadFile(filepath.Join(outDir, "0"))
	require.NoError(t, err)
	require.Equal(t, "0 3 2\n", string(rank0))

	rank1, err := os.ReadFile(filepath.Join(outDir, "1"))
	require.NoError(t, err)
	require.Equal(t, "1 5 2\n", string(rank1))
}

func TestLaunch_OversizedOutputLineDoesNotStall(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A single output line well beyond the relay's line buffer.
	trainer := writeTrainerScript(t,
		"#!/bin/sh\nhead -c 3000000 /dev/zero | tr '\\0' x\necho\nexit 0\n")
	run := launchRun(trainer, 1, []int{0})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// --- Act ---
	err := New(false).Launch(ctx, run)

	// --- Assert ---
	require.NoError(t, err)
	require.NoError(t, ctx.Err(), "launch must return long before the guard timeout")
}

func TestLaunch_CancellationKillsWorkerProcessTree(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The worker forks a helper that inherits its output pipes, then both
	// outlive any reasonable deadline.
	trainer := writeTrainerScript(t, "#!/bin/sh\nsleep 60 &\nsleep 60\n")
	run := launchRun(trainer, 1, []int{0})

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	// --- Act ---
	start := time.Now()
	err := New(false).Launch(ctx, run)

	// --- Assert ---
	require.Error(t, err)
	require.Less(t, time.Since(start), 30*time.Second, "cancellation must kill the whole worker process tree")
}

func TestLaunch_ReturnsWhenDescendantOutlivesWorker(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The worker exits immediately but leaves a child holding the output
	// pipes open; the grace period must force the pipes closed.
	trainer := writeTrainerScript(t, "#!/bin/sh\nsleep 60 &\nexit 0\n")
	run := launchRun(trainer, 1, []int{0})

	// --- Act ---
	start := time.Now()
	err := New(false).Launch(context.Background(), run)

	// --- Assert ---
	require.ErrorIs(t, err, exec.ErrWaitDelay)
	require.Less(t, time.Since(start), 30*time.Second)
}

func TestLaunch_DryRunSpawnsNothing(t *testing.T) {
	t.Parallel()

	// A trainer that would fail instantly if it ever ran.
	run := launchRun("/definitely/not/a/trainer.py", 1, []int{0})
	run.Python = "/definitely/not/python"

	err := New(true).Launch(context.Background(), run)

	require.NoError(t, err)
}

func TestWorkerCommand_InterpreterFirst(t *testing.T) {
	t.Parallel()

	run := launchRun("train.py", 1, []int{0})

	command := workerCommand(run)

	require.Equal(t, []string{"/bin/sh", "-u", "train.py"}, command[:3])
	require.Contains(t, command, "--model_name_or_path")
}
