// Package track assembles the experiment-tracking environment exported to
// every trainer worker. The tracking mode maps onto the WANDB_MODE variable
// the trainer's reporting integration reads; credentials are expected to come
// from the process environment (optionally seeded from a .env file at
// startup) and are never written by this package.
package track

import (
	"github.com/vk/tunegridgo/internal/model"
)

// Env var names read by the trainer's tracking integration.
const (
	modeVar    = "WANDB_MODE"
	projectVar = "WANDB_PROJECT"
	runNameVar = "WANDB_NAME"
)

// Env returns the tracking-related environment entries for a run, in
// KEY=value form, stable across calls.
func Env(run *model.Run) []string {
	env := []string{modeVar + "=" + run.Tracking.Mode}
	if run.Tracking.Project != "" {
		env = append(env, projectVar+"="+run.Tracking.Project)
	}
	if run.Tracking.Mode != model.TrackingDisabled {
		env = append(env, runNameVar+"="+run.Name)
	}
	return env
}
