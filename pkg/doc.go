// Package pkg provides the core libraries for Markov City grid generation.
//
// # Overview
//
// Markov City walks two first-order Markov chains, building heights and
// building colors, across a rectangular grid to produce procedural city
// layouts. The pkg directory is organized into these areas:
//
//  1. [markov] - Generic chain models, validation, and weighted sampling
//  2. [city] - Grid types and the lock-step two-chain generator
//  3. [config] - TOML chain configuration files
//  4. [scene] - Feeding generated grids to an external renderer
//  5. [diagram] - Graphviz state diagrams of the chains
//  6. [pipeline] - Orchestration (config → generate → export) with caching
//  7. [cache] - File, Redis, and null cache backends
//
// # Architecture
//
// The typical data flow:
//
//	TOML chain config
//	         ↓
//	    [config] package (parse + build validated models)
//	         ↓
//	    [city] package (walk both chains across the grid)
//	         ↓
//	    [pipeline] package (caching + export)
//	         ↓
//	    JSON output / scene renderer / HTTP response
//
// # Quick Start
//
// Generate a grid with the built-in configuration:
//
//	heights, colors, err := config.Default().Models()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen := city.NewGenerator(heights, colors)
//	grid, err := gen.Generate(16, 16, markov.NewSource(42))
package pkg
