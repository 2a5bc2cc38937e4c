// Package config defines the Loader interface that connects the application
// to a format-specific manifest reader.
//
// The `model.Manifest` produced by a Loader is the single source of truth
// for the `dag` and `launch` packages. The concrete HCL implementation lives
// in the `hcl` package.
package config
