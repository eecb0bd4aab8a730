// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// extract.go schedules the main->render Extract phase (§4.2). Systems
// declare their dependencies as explicit "after" edges; independent
// systems within the same wave run concurrently via errgroup, matching
// §5's "parallel-eligible only if declared independent".

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExtractSystem is one unit of the Extract phase: deriving or updating
// a RenderAssets[T] from its source Assets[T] delta. Named so
// dependency edges and error messages are legible.
type ExtractSystem struct {
	Name string
	Run  func(ctx context.Context) error

	after []string // names of systems that must complete first.
}

// After declares that s must run after the named systems, per §4.2's
// "derived assets ... schedule their extraction after the dependency's
// extraction" ordering constraint.
func (s ExtractSystem) After(names ...string) ExtractSystem {
	s.after = append(append([]string{}, s.after...), names...)
	return s
}

// Extraction is the Extract-phase scheduler: a poset of ExtractSystems
// run in topologically-ordered waves, each wave's independent systems
// running concurrently.
type Extraction struct {
	systems []ExtractSystem
}

// NewExtraction returns an empty scheduler.
func NewExtraction() *Extraction { return &Extraction{} }

// Add registers a system with the scheduler.
func (e *Extraction) Add(s ExtractSystem) { e.systems = append(e.systems, s) }

// Run executes every registered system to completion, honoring After
// edges, before returning. No Render system may begin until Run
// returns, matching §4.2's "no render-world system observes a partial
// extract" invariant.
func (e *Extraction) Run(ctx context.Context) error {
	waves, err := e.waves()
	if err != nil {
		return err
	}
	for _, wave := range waves {
		g, gctx := errgroup.WithContext(ctx)
		for _, sys := range wave {
			sys := sys
			g.Go(func() error {
				if err := sys.Run(gctx); err != nil {
					return fmt.Errorf("extract %q: %w", sys.Name, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// waves performs a Kahn topological sort of the registered systems,
// grouping each round's zero-in-degree systems into one concurrent
// wave.
func (e *Extraction) waves() ([][]ExtractSystem, error) {
	byName := make(map[string]ExtractSystem, len(e.systems))
	indeg := make(map[string]int, len(e.systems))
	dependents := make(map[string][]string)

	for _, s := range e.systems {
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("wallglass: duplicate extract system name %q", s.Name)
		}
		byName[s.Name] = s
		indeg[s.Name] = len(s.after)
		for _, dep := range s.after {
			dependents[dep] = append(dependents[dep], s.Name)
		}
	}

	var waves [][]ExtractSystem
	remaining := len(e.systems)
	for remaining > 0 {
		var wave []ExtractSystem
		for name, d := range indeg {
			if d == 0 {
				wave = append(wave, byName[name])
			}
		}
		if len(wave) == 0 {
			return nil, fmt.Errorf("wallglass: extract system dependency cycle")
		}
		for _, s := range wave {
			delete(indeg, s.Name)
			remaining--
			for _, next := range dependents[s.Name] {
				indeg[next]--
			}
		}
		waves = append(waves, wave)
	}
	return waves, nil
}
