// Package launch is the distributed-launch utility: it starts one trainer
// worker process per requested accelerator device, wires up the rendezvous
// and device-visibility environment, relays worker output into the
// structured log, and propagates the first failure.
//
// The trainer itself is an external program; this package only owns the
// invocation contract — argv, environment, and exit status.
package launch
