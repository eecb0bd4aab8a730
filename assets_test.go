// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import "testing"

type stubMesh struct{ verts int }

func TestAssetsHandleLifecycle(t *testing.T) {
	assets := NewAssets[stubMesh]()

	h1 := assets.Add(stubMesh{verts: 3})
	h2 := h1.Clone()

	if _, ok := assets.Get(h1.Id); !ok {
		t.Fatalf("asset missing immediately after add")
	}

	h1.Release()
	assets.DrainDrops()
	assets.Flush()
	if _, ok := assets.Get(h1.Id); !ok {
		t.Fatalf("asset removed while a clone is still alive")
	}

	h2.Release()
	assets.DrainDrops()
	assets.Flush()
	if _, ok := assets.Get(h1.Id); ok {
		t.Fatalf("asset survived release of its last handle")
	}
}

func TestAssetsChangeSetsEmptyAfterFlush(t *testing.T) {
	assets := NewAssets[stubMesh]()
	h := assets.Add(stubMesh{verts: 1})
	assets.GetMut(h.Id)
	assets.Remove(h.Id)

	assets.Flush()

	if n := len(assets.NewAssetIds()); n != 0 {
		t.Fatalf("new not empty after flush: %d", n)
	}
	if n := len(assets.ChangedAssetIds()); n != 0 {
		t.Fatalf("changed not empty after flush: %d", n)
	}
	if n := len(assets.RemovedAssetIds()); n != 0 {
		t.Fatalf("removed not empty after flush: %d", n)
	}
}

func TestAssetsReinsertSurvivesStaleDrop(t *testing.T) {
	assets := NewAssets[stubMesh]()
	h := assets.Add(stubMesh{verts: 1})
	id := h.Id

	// Drop the handle but re-insert the same logical asset under the
	// same id before the drop is drained: the re-insertion must win.
	h.Release()
	assets.Insert(id, stubMesh{verts: 2})
	assets.DrainDrops()
	assets.Flush()

	v, ok := assets.Get(id)
	if !ok {
		t.Fatalf("re-inserted asset was erased by a stale drop event")
	}
	if v.verts != 2 {
		t.Fatalf("got stale value %+v", v)
	}
}

func TestAssetsMonotonicIds(t *testing.T) {
	assets := NewAssets[stubMesh]()
	h1 := assets.Add(stubMesh{})
	h1.Release()
	assets.DrainDrops()
	assets.Flush()
	h2 := assets.Add(stubMesh{})
	if h2.Id == h1.Id {
		t.Fatalf("asset id reused after removal: %d", h2.Id)
	}
	if h2.Id <= h1.Id {
		t.Fatalf("asset ids must be monotonic: %d then %d", h1.Id, h2.Id)
	}
}

func TestAssetsRemoveUnknownIsNonFatal(t *testing.T) {
	assets := NewAssets[stubMesh]()
	assets.Remove(AssetId(9999)) // must not panic.
	if n := len(assets.RemovedAssetIds()); n != 0 {
		t.Fatalf("unknown remove should not be queued, got %d", n)
	}
}

type stubRenderMesh struct {
	verts   int
	replace bool
}

func (r stubRenderMesh) ReplaceOnUpdate() bool { return r.replace }

func TestRenderAssetsExtractIdempotence(t *testing.T) {
	src := NewAssets[stubMesh]()
	h := src.Add(stubMesh{verts: 5})

	extract := func(s stubMesh) (stubRenderMesh, bool, error) {
		return stubRenderMesh{verts: s.verts, replace: true}, true, nil
	}

	render := NewRenderAssets[stubMesh, stubRenderMesh]()
	lookup := func(id AssetId) (stubMesh, bool) { return src.Get(id) }

	render.ExtractUpdatePhase(src.NewAssetIds(), nil, lookup, extract, nil, false)
	src.Flush()
	first, _ := render.Get(h.Id)

	render.ExtractUpdatePhase(nil, nil, lookup, extract, nil, false)
	second, _ := render.Get(h.Id)

	if first != second {
		t.Fatalf("two idle extract ticks produced different content: %+v vs %+v", first, second)
	}
}

func TestRenderAssetsRemovePhase(t *testing.T) {
	src := NewAssets[stubMesh]()
	h := src.Add(stubMesh{verts: 1})
	extract := func(s stubMesh) (stubRenderMesh, bool, error) {
		return stubRenderMesh{verts: s.verts}, true, nil
	}
	lookup := func(id AssetId) (stubMesh, bool) { return src.Get(id) }

	render := NewRenderAssets[stubMesh, stubRenderMesh]()
	render.ExtractUpdatePhase(src.NewAssetIds(), nil, lookup, extract, nil, true)
	src.Flush()

	if _, ok := render.Get(h.Id); !ok {
		t.Fatalf("render asset not created by extract")
	}

	h.Release()
	src.DrainDrops()
	render.RemovePhase(src.RemovedAssetIds())
	src.Flush()
	render.FlushPhase()

	if _, ok := render.Get(h.Id); ok {
		t.Fatalf("render asset survived remove+flush phases")
	}
}
