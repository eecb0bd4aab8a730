// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"context"
	"sync"
	"testing"
)

func TestExtractionRunsDependenciesFirst(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	e := NewExtraction()
	e.Add(ExtractSystem{Name: "material", Run: record("material")}.After("mesh"))
	e.Add(ExtractSystem{Name: "mesh", Run: record("mesh")})

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[0] != "mesh" || order[1] != "material" {
		t.Fatalf("order = %v, want [mesh material]", order)
	}
}

func TestExtractionDetectsCycle(t *testing.T) {
	e := NewExtraction()
	noop := func(context.Context) error { return nil }
	e.Add(ExtractSystem{Name: "a", Run: noop}.After("b"))
	e.Add(ExtractSystem{Name: "b", Run: noop}.After("a"))

	if err := e.Run(context.Background()); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestExtractionPropagatesSystemError(t *testing.T) {
	e := NewExtraction()
	wantErr := context.Canceled
	e.Add(ExtractSystem{Name: "fails", Run: func(context.Context) error { return wantErr }})

	err := e.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
}
