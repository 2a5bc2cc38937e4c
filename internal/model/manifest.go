// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "fmt"

// Manifest is the merged result of loading one or more manifest files. Runs
// keep their declaration order; ByName is a lookup over the same records.
type Manifest struct {
	Runs   []*Run
	ByName map[string]*Run
}

// NewManifest builds a Manifest from decoded runs, rejecting duplicate names.
func NewManifest(runs []*Run) (*Manifest, error) {
	m := &Manifest{ByName: make(map[string]*Run, len(runs))}
	for _, run := range runs {
		if _, exists := m.ByName[run.Name]; exists {
			return nil, fmt.Errorf("duplicate run name %q", run.Name)
		}
		m.ByName[run.Name] = run
		m.Runs = append(m.Runs, run)
	}
	return m, nil
}

// Select narrows the manifest to the named run plus its transitive
// dependencies, preserving declaration order.
func (m *Manifest) Select(name string) (*Manifest, error) {
	if _, ok := m.ByName[name]; !ok {
		return nil, fmt.Errorf("manifest has no run named %q", name)
	}

	wanted := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if wanted[name] {
			return
		}
		wanted[name] = true
		if run, ok := m.ByName[name]; ok {
			for _, dep := range run.DependsOn {
				visit(dep)
			}
		}
	}
	visit(name)

	var selected []*Run
	for _, run := range m.Runs {
		if wanted[run.Name] {
			selected = append(selected, run)
		}
	}
	return NewManifest(selected)
}
