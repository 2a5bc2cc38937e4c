// Package argv renders a validated run record into the flag list of the
// external training program. Rendering is a pure function of the record:
// identical records always produce identical argument vectors, in a fixed
// field order, so a re-launch with the same manifest is byte-for-byte the
// same invocation.
package argv

import (
	"strconv"

	"github.com/vk/tunegridgo/internal/model"
)

// Render translates the record into HF-trainer style `--name value` pairs.
// The caller owns the returned slice.
func Render(run *model.Run) []string {
	var args []string
	add := func(name, value string) {
		args = append(args, "--"+name, value)
	}

	add("model_name_or_path", run.Model.NameOrPath)
	add("data_path", run.Data.TrainPath)
	if run.Data.EvalPath != "" {
		add("eval_data_path", run.Data.EvalPath)
	}
	add("output_dir", run.Model.OutputDir)

	add("bf16", formatBool(run.Precision.BF16))
	add("tf32", formatBool(run.Precision.TF32))

	add("num_train_epochs", formatFloat(run.Schedule.NumTrainEpochs))
	add("per_device_train_batch_size", strconv.Itoa(run.Batching.PerDeviceTrainBatchSize))
	add("per_device_eval_batch_size", strconv.Itoa(run.Batching.PerDeviceEvalBatchSize))
	add("gradient_accumulation_steps", strconv.Itoa(run.Batching.GradientAccumulationSteps))

	add("evaluation_strategy", run.Schedule.EvaluationStrategy)
	add("save_strategy", run.Schedule.SaveStrategy)
	add("save_steps", strconv.Itoa(*run.Schedule.SaveSteps))
	add("save_total_limit", strconv.Itoa(run.Schedule.SaveTotalLimit))

	add("learning_rate", formatFloat(run.Optimizer.LearningRate))
	add("weight_decay", formatFloat(run.Optimizer.WeightDecay))
	add("warmup_ratio", formatFloat(run.Optimizer.WarmupRatio))
	add("lr_scheduler_type", run.Optimizer.LRSchedulerType)

	add("logging_steps", strconv.Itoa(*run.Schedule.LoggingSteps))

	if run.Model.MaxLength > 0 {
		add("model_max_length", strconv.Itoa(run.Model.MaxLength))
	}

	return args
}

// formatBool renders booleans the way the trainer's argument parser expects
// them, not the Go way.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
