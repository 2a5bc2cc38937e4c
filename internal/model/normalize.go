// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// Default values applied to fields the manifest leaves unset. They mirror
// the external trainer's own defaults so the resolved record snapshot is an
// honest description of what the trainer will actually do.
const (
	DefaultPython                = "python3"
	DefaultEvaluationStrategy    = StrategyNo
	DefaultSaveStrategy          = StrategySteps
	DefaultSaveSteps             = 500
	DefaultLoggingSteps          = 500
	DefaultTrainBatchSize        = 8
	DefaultEvalBatchSize         = 8
	DefaultGradAccumulationSteps = 1
	DefaultLRSchedulerType       = SchedulerLinear
	DefaultNprocPerNode          = 1
	DefaultTrackingMode          = TrackingDisabled
)

// Normalize fills every unset optional field with its default. It must be
// called exactly once, after decoding and before Validate; the record is
// read-only from then on.
func (r *Run) Normalize() {
	if r.Python == "" {
		r.Python = DefaultPython
	}
	if r.Precision == nil {
		r.Precision = &Precision{}
	}
	if r.Schedule.EvaluationStrategy == "" {
		r.Schedule.EvaluationStrategy = DefaultEvaluationStrategy
	}
	if r.Schedule.SaveStrategy == "" {
		r.Schedule.SaveStrategy = DefaultSaveStrategy
	}
	if r.Schedule.SaveSteps == nil {
		r.Schedule.SaveSteps = intRef(DefaultSaveSteps)
	}
	if r.Schedule.LoggingSteps == nil {
		r.Schedule.LoggingSteps = intRef(DefaultLoggingSteps)
	}
	if r.Batching == nil {
		r.Batching = &Batching{}
	}
	if r.Batching.PerDeviceTrainBatchSize == 0 {
		r.Batching.PerDeviceTrainBatchSize = DefaultTrainBatchSize
	}
	if r.Batching.PerDeviceEvalBatchSize == 0 {
		r.Batching.PerDeviceEvalBatchSize = DefaultEvalBatchSize
	}
	if r.Batching.GradientAccumulationSteps == 0 {
		r.Batching.GradientAccumulationSteps = DefaultGradAccumulationSteps
	}
	if r.Optimizer.LRSchedulerType == "" {
		r.Optimizer.LRSchedulerType = DefaultLRSchedulerType
	}
	if r.Topology == nil {
		r.Topology = &Topology{}
	}
	if r.Topology.NprocPerNode == 0 {
		r.Topology.NprocPerNode = DefaultNprocPerNode
	}
	if len(r.Topology.Devices) == 0 && r.Topology.NprocPerNode > 0 {
		devices := make([]int, r.Topology.NprocPerNode)
		for i := range devices {
			devices[i] = i
		}
		r.Topology.Devices = devices
	}
	if r.Tracking == nil {
		r.Tracking = &Tracking{}
	}
	if r.Tracking.Mode == "" {
		r.Tracking.Mode = DefaultTrackingMode
	}
}

func intRef(v int) *int {
	return &v
}
