// Package dag is the execution layer of the application. It builds a
// Directed Acyclic Graph from the runs in a manifest (edges come from
// `depends_on`) and executes the runs concurrently with a bounded worker
// pool, respecting their dependencies.
//
// A failed run marks its dependents as skipped; runs on independent branches
// keep going.
package dag
