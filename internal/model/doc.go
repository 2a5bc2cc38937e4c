// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the format-agnostic representation of a fine-tuning
// run: the hyperparameter record the user declares in a manifest, plus the
// process topology and experiment-tracking settings that control how the
// external trainer is launched.
//
// A Run is decoded by a loader (see internal/hcl), normalized once with
// defaults, validated against the documented domains, and never mutated
// afterwards. The record fully determines the behavior of the launch: the
// same record always renders to the same trainer argv and worker environment.
package model
