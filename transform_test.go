// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"testing"

	"github.com/kestrelpane/wallglass/math/lin"
)

func TestTransformPropagationThreeLevelChain(t *testing.T) {
	w := NewWorld()

	root := w.Spawn()
	w.SetTransform(root, lin.NewT().SetLoc(1, 2, 3))

	mid := w.Spawn()
	w.SetTransform(mid, lin.NewT().SetLoc(1, 1, 1))
	w.SetParent(mid, root)

	leaf := w.Spawn()
	w.SetTransform(leaf, lin.NewT().SetLoc(1, 1, 1))
	w.SetParent(leaf, mid)

	w.Propagate()

	midGlobal := w.GlobalTransform(mid).Loc
	if !midGlobal.Aeq(&lin.V3{X: 2, Y: 3, Z: 4}) {
		t.Fatalf("mid global translation = %+v, want (2,3,4)", midGlobal)
	}

	leafGlobal := w.GlobalTransform(leaf).Loc
	if !leafGlobal.Aeq(&lin.V3{X: 3, Y: 4, Z: 5}) {
		t.Fatalf("leaf global translation = %+v, want (3,4,5)", leafGlobal)
	}
}

// A four-level chain of (1,1,1) translations: each level adds its local
// translation to its parent's global one, so the globals below the
// (1,1,1) root are (2,2,2), (3,3,3) and (4,4,4).
func TestTransformPropagationSpecWorkedExample(t *testing.T) {
	w := NewWorld()

	root := w.Spawn()
	w.SetTransform(root, lin.NewT().SetLoc(1, 1, 1))

	mid := w.Spawn()
	w.SetTransform(mid, lin.NewT().SetLoc(1, 1, 1))
	w.SetParent(mid, root)

	leaf := w.Spawn()
	w.SetTransform(leaf, lin.NewT().SetLoc(1, 1, 1))
	w.SetParent(leaf, mid)

	leaf2 := w.Spawn()
	w.SetTransform(leaf2, lin.NewT().SetLoc(1, 1, 1))
	w.SetParent(leaf2, leaf)

	w.Propagate()

	want := &lin.V3{X: 2, Y: 2, Z: 2}
	if got := w.GlobalTransform(mid).Loc; !got.Aeq(want) {
		t.Fatalf("intermediate global = %+v, want %+v", got, want)
	}

	want = &lin.V3{X: 3, Y: 3, Z: 3}
	if got := w.GlobalTransform(leaf).Loc; !got.Aeq(want) {
		t.Fatalf("leaf global = %+v, want %+v", got, want)
	}

	want = &lin.V3{X: 4, Y: 4, Z: 4}
	if got := w.GlobalTransform(leaf2).Loc; !got.Aeq(want) {
		t.Fatalf("leaf2 global = %+v, want %+v", got, want)
	}
}

func TestTransformPropagationNoExplicitTransformIsIdentity(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	w.SetTransform(root, lin.NewT().SetLoc(5, 0, 0))

	// child spawned but never given an explicit transform.
	child := w.Spawn()
	delete(w.transforms, child)
	w.SetParent(child, root)

	w.Propagate()

	want := &lin.V3{X: 5, Y: 0, Z: 0}
	if got := w.GlobalTransform(child).Loc; !got.Aeq(want) {
		t.Fatalf("identity-default child global = %+v, want %+v", got, want)
	}
}

func TestTransformChangedClearedAfterPropagate(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	w.SetTransform(e, lin.NewT().SetLoc(1, 0, 0))
	if !w.Changed(e) {
		t.Fatalf("expected Changed after SetTransform")
	}
	w.Propagate()
	if w.Changed(e) {
		t.Fatalf("expected Changed cleared after Propagate")
	}
}
