// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// PipelineConfig describes a fillsinks -> single-flow graph ->
// accumulate run (or, with priority_flood, a priority-flood graph ->
// accumulate run); the flats, gwdt and route steps are not part of
// it. It is the shape the "pipeline" subcommand reads from a
// TOML file so a batch run doesn't need a long flag list repeated on
// every invocation.
type PipelineConfig struct {
	Input  string  `toml:"input"`
	Output string  `toml:"output"`
	DX     float64 `toml:"dx"`
	D8     bool    `toml:"d8"`
	Hybrid bool    `toml:"hybrid"`

	PriorityFlood bool `toml:"priority_flood"`

	Accumulation struct {
		CellArea float64 `toml:"cell_area"`
		Weights  string  `toml:"weights"`
	} `toml:"accumulation"`
}

// LoadPipelineConfig decodes a TOML pipeline configuration file.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	var cfg PipelineConfig
	cfg.DX = 1.0
	cfg.Accumulation.CellArea = 1.0

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %q: %w", path, err)
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("config: %q: missing required field \"input\"", path)
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("config: %q: missing required field \"output\"", path)
	}
	return &cfg, nil
}
