// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Run structure, the atomic unit of work in a
// manifest. It represents a single, fully-configured invocation of the
// external training program.
package model

// Run is the format-agnostic representation of a `run` block.
type Run struct {
	Name        string            `hcl:"name,label" yaml:"name"`
	Trainer     string            `hcl:"trainer" yaml:"trainer"`
	Python      string            `hcl:"python,optional" yaml:"python"`
	Description string            `hcl:"description,optional" yaml:"description,omitempty"`
	DependsOn   []string          `hcl:"depends_on,optional" yaml:"depends_on,omitempty"`
	NotifyURL   string            `hcl:"notify_url,optional" yaml:"notify_url,omitempty"`
	Env         map[string]string `hcl:"env,optional" yaml:"env,omitempty"`

	Model     Model      `hcl:"model,block" yaml:"model"`
	Data      *Data      `hcl:"data,block" yaml:"data"`
	Precision *Precision `hcl:"precision,block" yaml:"precision"`
	Schedule  Schedule   `hcl:"schedule,block" yaml:"schedule"`
	Batching  *Batching  `hcl:"batching,block" yaml:"batching"`
	Optimizer Optimizer  `hcl:"optimizer,block" yaml:"optimizer"`
	Topology  *Topology  `hcl:"topology,block" yaml:"topology"`
	Tracking  *Tracking  `hcl:"tracking,block" yaml:"tracking"`
}

// Model identifies the base model to fine-tune and where artifacts land.
type Model struct {
	NameOrPath string `hcl:"name_or_path" yaml:"name_or_path"`
	OutputDir  string `hcl:"output_dir" yaml:"output_dir"`
	MaxLength  int    `hcl:"max_length,optional" yaml:"max_length,omitempty"`
}

// Data names the training and evaluation datasets handed to the trainer.
type Data struct {
	TrainPath string `hcl:"train_path" yaml:"train_path"`
	EvalPath  string `hcl:"eval_path,optional" yaml:"eval_path,omitempty"`
}

// Precision holds the reduced-precision numeric toggles.
type Precision struct {
	BF16 bool `hcl:"bf16,optional" yaml:"bf16"`
	TF32 bool `hcl:"tf32,optional" yaml:"tf32"`
}

// Schedule controls training duration and the cadence of evaluation,
// checkpointing, and logging. SaveSteps and LoggingSteps are pointers so an
// explicit 0 in the manifest stays distinguishable from an absent attribute;
// Normalize resolves them, so both are non-nil on a normalized record.
type Schedule struct {
	NumTrainEpochs     float64 `hcl:"num_train_epochs" yaml:"num_train_epochs"`
	EvaluationStrategy string  `hcl:"evaluation_strategy,optional" yaml:"evaluation_strategy"`
	SaveStrategy       string  `hcl:"save_strategy,optional" yaml:"save_strategy"`
	SaveSteps          *int    `hcl:"save_steps,optional" yaml:"save_steps"`
	SaveTotalLimit     int     `hcl:"save_total_limit,optional" yaml:"save_total_limit"`
	LoggingSteps       *int    `hcl:"logging_steps,optional" yaml:"logging_steps"`
}

// Batching controls per-device batch sizing and gradient accumulation.
type Batching struct {
	PerDeviceTrainBatchSize   int `hcl:"per_device_train_batch_size,optional" yaml:"per_device_train_batch_size"`
	PerDeviceEvalBatchSize    int `hcl:"per_device_eval_batch_size,optional" yaml:"per_device_eval_batch_size"`
	GradientAccumulationSteps int `hcl:"gradient_accumulation_steps,optional" yaml:"gradient_accumulation_steps"`
}

// Optimizer holds the optimizer hyperparameters and the learning-rate
// schedule shape.
type Optimizer struct {
	LearningRate    float64 `hcl:"learning_rate" yaml:"learning_rate"`
	WeightDecay     float64 `hcl:"weight_decay,optional" yaml:"weight_decay"`
	WarmupRatio     float64 `hcl:"warmup_ratio,optional" yaml:"warmup_ratio"`
	LRSchedulerType string  `hcl:"lr_scheduler_type,optional" yaml:"lr_scheduler_type"`
}

// Topology describes the worker processes the launch utility starts: how
// many per node and which accelerator ordinal each one sees.
type Topology struct {
	NprocPerNode int   `hcl:"nproc_per_node,optional" yaml:"nproc_per_node"`
	Devices      []int `hcl:"devices,optional" yaml:"devices"`
	MasterPort   int   `hcl:"master_port,optional" yaml:"master_port"`
}

// Tracking selects the experiment-tracking mode exported to the trainer.
type Tracking struct {
	Mode    string `hcl:"mode,optional" yaml:"mode"`
	Project string `hcl:"project,optional" yaml:"project,omitempty"`
}
