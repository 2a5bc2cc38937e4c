// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "fmt"

// Accepted values for the enum-typed fields of a run record.
const (
	StrategyNo    = "no"
	StrategySteps = "steps"
	StrategyEpoch = "epoch"

	SchedulerLinear             = "linear"
	SchedulerCosine             = "cosine"
	SchedulerCosineWithRestarts = "cosine_with_restarts"
	SchedulerPolynomial         = "polynomial"
	SchedulerConstant           = "constant"
	SchedulerConstantWarmup     = "constant_with_warmup"
	SchedulerInverseSqrt        = "inverse_sqrt"

	TrackingDisabled = "disabled"
	TrackingOffline  = "offline"
	TrackingOnline   = "online"
)

var (
	cadenceStrategies = map[string]bool{
		StrategyNo:    true,
		StrategySteps: true,
		StrategyEpoch: true,
	}
	schedulerTypes = map[string]bool{
		SchedulerLinear:             true,
		SchedulerCosine:             true,
		SchedulerCosineWithRestarts: true,
		SchedulerPolynomial:         true,
		SchedulerConstant:           true,
		SchedulerConstantWarmup:     true,
		SchedulerInverseSqrt:        true,
	}
	trackingModes = map[string]bool{
		TrackingDisabled: true,
		TrackingOffline:  true,
		TrackingOnline:   true,
	}
)

// Validate checks every field of a normalized record against its documented
// domain. It returns the first violation found, naming the run, the field,
// and the offending value.
func (r *Run) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("run %q: %s", r.Name, fmt.Sprintf(format, args...))
	}

	if r.Trainer == "" {
		return fail("trainer is required")
	}
	if r.Model.NameOrPath == "" {
		return fail("model: name_or_path is required")
	}
	if r.Model.OutputDir == "" {
		return fail("model: output_dir is required")
	}
	if r.Model.MaxLength < 0 {
		return fail("model: max_length must be >= 0, got %d", r.Model.MaxLength)
	}
	if r.Data == nil {
		return fail("data block is required")
	}
	if r.Data.TrainPath == "" {
		return fail("data: train_path is required")
	}

	s := r.Schedule
	if s.NumTrainEpochs <= 0 {
		return fail("schedule: num_train_epochs must be > 0, got %v", s.NumTrainEpochs)
	}
	if !cadenceStrategies[s.EvaluationStrategy] {
		return fail("schedule: evaluation_strategy must be one of no, steps, epoch; got %q", s.EvaluationStrategy)
	}
	if !cadenceStrategies[s.SaveStrategy] {
		return fail("schedule: save_strategy must be one of no, steps, epoch; got %q", s.SaveStrategy)
	}
	if *s.SaveSteps < 0 {
		return fail("schedule: save_steps must be >= 0, got %d", *s.SaveSteps)
	}
	if s.SaveTotalLimit < 0 {
		return fail("schedule: save_total_limit must be >= 0, got %d", s.SaveTotalLimit)
	}
	if *s.LoggingSteps < 0 {
		return fail("schedule: logging_steps must be >= 0, got %d", *s.LoggingSteps)
	}

	b := r.Batching
	if b.PerDeviceTrainBatchSize < 1 {
		return fail("batching: per_device_train_batch_size must be >= 1, got %d", b.PerDeviceTrainBatchSize)
	}
	if b.PerDeviceEvalBatchSize < 1 {
		return fail("batching: per_device_eval_batch_size must be >= 1, got %d", b.PerDeviceEvalBatchSize)
	}
	if b.GradientAccumulationSteps < 1 {
		return fail("batching: gradient_accumulation_steps must be >= 1, got %d", b.GradientAccumulationSteps)
	}

	o := r.Optimizer
	if o.LearningRate < 0 {
		return fail("optimizer: learning_rate must be >= 0, got %v", o.LearningRate)
	}
	if o.WeightDecay < 0 {
		return fail("optimizer: weight_decay must be >= 0, got %v", o.WeightDecay)
	}
	if o.WarmupRatio < 0 || o.WarmupRatio > 1 {
		return fail("optimizer: warmup_ratio must be within [0, 1], got %v", o.WarmupRatio)
	}
	if !schedulerTypes[o.LRSchedulerType] {
		return fail("optimizer: unsupported lr_scheduler_type %q", o.LRSchedulerType)
	}

	t := r.Topology
	if t.NprocPerNode < 1 {
		return fail("topology: nproc_per_node must be >= 1, got %d", t.NprocPerNode)
	}
	if len(t.Devices) != t.NprocPerNode {
		return fail("topology: devices lists %d ordinals for %d workers", len(t.Devices), t.NprocPerNode)
	}
	for _, d := range t.Devices {
		if d < 0 {
			return fail("topology: device ordinal must be >= 0, got %d", d)
		}
	}
	if t.MasterPort != 0 && (t.MasterPort < 1024 || t.MasterPort > 65535) {
		return fail("topology: master_port must be 0 (auto) or within [1024, 65535], got %d", t.MasterPort)
	}

	if !trackingModes[r.Tracking.Mode] {
		return fail("tracking: mode must be one of disabled, offline, online; got %q", r.Tracking.Mode)
	}

	return nil
}
