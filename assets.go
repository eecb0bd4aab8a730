// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// assets.go provides the typed, change-tracked asset registries used by
// the main and render worlds. Assets[T] lives in the main world and owns
// the canonical copy of T; RefAssets[T] and RenderAssets[T] live in the
// render world and hold derived GPU-side twins keyed by the same id.

import "log/slog"

// dropBuffer sizes the mpsc drop channel each Assets[T] registry reads
// from. Handle releases rarely burst past a few dozen per frame; this
// is generous headroom, not a hard cap (Release degrades gracefully if
// it is exceeded, see AssetHandle.Release).
const dropBuffer = 1024

// Assets is the main-world store for one asset kind T. It tracks three
// per-frame change lists (new, changed, removed) consumed by extraction
// and cleared at PostExtract via flush.
type Assets[T any] struct {
	ids   idGenerator
	items map[AssetId]T

	new     []AssetId
	changed []AssetId
	removed []AssetId

	drops chan AssetId
}

// NewAssets returns an empty registry ready to accept assets of type T.
func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{
		items: make(map[AssetId]T),
		drops: make(chan AssetId, dropBuffer),
	}
}

// Add allocates a new id, stores asset, records the id in new, and
// returns a handle holding the first reference-counted claim on it.
func (a *Assets[T]) Add(asset T) AssetHandle[T] {
	id := a.ids.alloc()
	a.items[id] = asset
	a.new = append(a.new, id)
	return newHandle[T](id, a.drops)
}

// Insert stores asset at a caller-chosen id, overwriting any existing
// value, and records the id in new. Used when re-creating a logical
// asset under an id a drop event may already target: Insert drains the
// drop channel and cancels every removal pending for id, so a stale drop
// sent before the re-insertion does not erase the new entry at flush.
func (a *Assets[T]) Insert(id AssetId, asset T) {
	a.DrainDrops()
	kept := a.removed[:0]
	for _, r := range a.removed {
		if r != id {
			kept = append(kept, r)
		}
	}
	a.removed = kept
	a.items[id] = asset
	a.new = append(a.new, id)
}

// Get returns the asset for id, or the zero value and false if id is
// absent.
func (a *Assets[T]) Get(id AssetId) (T, bool) {
	v, ok := a.items[id]
	return v, ok
}

// GetMut returns a pointer to a copy of the asset for id, recording id
// in changed. The pointer does not alias the stored value; a mutation
// through it is committed with Set. Returns nil, false if id is absent.
//
// Go has no borrow checker to enforce "don't retain the pointer past
// the frame"; callers are expected to use it immediately, matching how
// the rest of this package treats Assets[T] as single-writer per frame.
func (a *Assets[T]) GetMut(id AssetId) (*T, bool) {
	v, ok := a.items[id]
	if !ok {
		return nil, false
	}
	a.items[id] = v
	a.changed = append(a.changed, id)
	p := new(T)
	*p = a.items[id]
	return p, true
}

// Set stores v back after a GetMut-based mutation; it does not record id
// in changed again, since GetMut already did. GetMut's returned pointer
// does not alias the map entry, so callers that mutate through it must
// call Set to commit the change.
func (a *Assets[T]) Set(id AssetId, v T) {
	a.items[id] = v
}

// NewAssetIds returns the ids added this frame, used exclusively by
// extraction.
func (a *Assets[T]) NewAssetIds() []AssetId { return a.new }

// ChangedAssetIds returns the ids mutated this frame, possibly with
// duplicates; extraction tolerates duplicates.
func (a *Assets[T]) ChangedAssetIds() []AssetId { return a.changed }

// RemovedAssetIds returns the ids queued for removal this frame.
func (a *Assets[T]) RemovedAssetIds() []AssetId { return a.removed }

// Remove queues id for removal at the next flush. Removing an unknown
// id is logged but non-fatal, matching the registry's failure
// semantics for all lookups on unknown ids.
func (a *Assets[T]) Remove(id AssetId) {
	if _, ok := a.items[id]; !ok {
		slog.Warn("wallglass: remove of unknown asset id", "id", id)
		return
	}
	a.removed = append(a.removed, id)
}

// DrainDrops performs a non-blocking drain of the handle drop channel,
// appending every received id to removed. Safe to call any number of
// times per frame; intended to run once per PostExtract.
func (a *Assets[T]) DrainDrops() {
	for {
		select {
		case id := <-a.drops:
			a.removed = append(a.removed, id)
		default:
			return
		}
	}
}

// Flush clears new and changed, erases every id in removed from the
// map, and clears removed. Called once per frame at PostExtract, after
// extraction has had a chance to observe the frame's deltas.
func (a *Assets[T]) Flush() {
	a.new = a.new[:0]
	a.changed = a.changed[:0]
	for _, id := range a.removed {
		delete(a.items, id)
	}
	a.removed = a.removed[:0]
}

// RefAssets is the render-world passive twin of Assets[T]: a map keyed
// by the same AssetId space with only a removed list, used for derived
// GPU objects whose identity mirrors a source asset but that are not
// populated through the extract/update protocol (e.g. render-world
// entity counterparts spawned directly by extraction code).
type RefAssets[T any] struct {
	items   map[AssetId]T
	removed []AssetId
}

// NewRefAssets returns an empty RefAssets[T].
func NewRefAssets[T any]() *RefAssets[T] {
	return &RefAssets[T]{items: make(map[AssetId]T)}
}

func (r *RefAssets[T]) Get(id AssetId) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *RefAssets[T]) Insert(id AssetId, v T) { r.items[id] = v }

func (r *RefAssets[T]) MarkRemoved(id AssetId) { r.removed = append(r.removed, id) }

func (r *RefAssets[T]) RemovedAssetIds() []AssetId { return r.removed }

// Flush erases every id in removed and clears the list.
func (r *RefAssets[T]) Flush() {
	for _, id := range r.removed {
		delete(r.items, id)
	}
	r.removed = r.removed[:0]
}

// RenderAsset is implemented by render-world types that are derived
// from a main-world Source via extraction rather than spawned directly.
// ReplaceOnUpdate chooses the extraction protocol's Update-phase policy
// (§4.2): true re-runs Extract on every changed id, false calls Update
// in place and only falls back to Extract for ids with no render entry
// yet.
type RenderAsset[Source any] interface {
	ReplaceOnUpdate() bool
}

// Extractor derives a RenderAsset from its Source. A nil error with
// ok=false means "skip this id": tolerated for insert-only types,
// otherwise ExtractUpdatePhase treats it as ExtractSkipUnexpected, a
// programmer error per §7, and panics.
type Extractor[Source any, R RenderAsset[Source]] func(src Source) (R, bool, error)

// Updater mutates an existing render asset in place from its source,
// used when ReplaceOnUpdate is false.
type Updater[Source any, R RenderAsset[Source]] func(r *R, src Source) error

// RenderAssets is the render-world store populated by the extraction
// protocol described in §4.2: Remove, Extract, Update, Flush.
type RenderAssets[Source any, R RenderAsset[Source]] struct {
	items   map[AssetId]R
	removed []AssetId
}

// NewRenderAssets returns an empty RenderAssets[Source, R].
func NewRenderAssets[Source any, R RenderAsset[Source]]() *RenderAssets[Source, R] {
	return &RenderAssets[Source, R]{items: make(map[AssetId]R)}
}

func (r *RenderAssets[Source, R]) Get(id AssetId) (R, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *RenderAssets[Source, R]) Len() int { return len(r.items) }

// RemovedAssetIds returns the ids queued for removal by RemovePhase but
// not yet dropped by FlushPhase, mirroring Assets[T]/RefAssets[T]'s
// accessor of the same name - used by callers (e.g. a render asset
// whose R owns a destructor) that need to run teardown logic before the
// entries disappear.
func (r *RenderAssets[Source, R]) RemovedAssetIds() []AssetId { return r.removed }

// RemovePhase marks every id present in removedIds (typically the
// source Assets[Source].RemovedAssetIds()) for removal from this store.
func (r *RenderAssets[Source, R]) RemovePhase(removedIds []AssetId) {
	r.removed = append(r.removed, removedIds...)
}

// ExtractUpdatePhase runs the Extract and Update phases of §4.2 against
// this frame's new/changed ids from the source registry. insertOnly
// reports whether this render asset type only ever extracts on first
// appearance (never replaces on update); it gates whether a "skip"
// result is tolerated.
func (r *RenderAssets[Source, R]) ExtractUpdatePhase(
	newIds, changedIds []AssetId,
	lookup func(AssetId) (Source, bool),
	extract Extractor[Source, R],
	update Updater[Source, R],
	insertOnly bool,
) error {
	for _, id := range newIds {
		src, ok := lookup(id)
		if !ok {
			continue // removed again before extraction ran this frame.
		}
		asset, ok, err := extract(src)
		if err != nil {
			slog.Warn("wallglass: extract failed", "id", id, "error", err)
			continue
		}
		if !ok {
			if !insertOnly {
				panic("wallglass: extract returned skip for a replace-on-update render asset")
			}
			continue
		}
		r.items[id] = asset
	}

	replaceOnUpdate := insertOnly == false
	for _, id := range dedupe(changedIds) {
		src, ok := lookup(id)
		if !ok {
			continue
		}
		existing, has := r.items[id]
		switch {
		case replaceOnUpdate || !has:
			asset, ok, err := extract(src)
			if err != nil {
				slog.Warn("wallglass: extract failed", "id", id, "error", err)
				continue
			}
			if !ok {
				if !insertOnly {
					panic("wallglass: extract returned skip for a replace-on-update render asset")
				}
				continue
			}
			r.items[id] = asset
		default:
			if update == nil {
				continue
			}
			if err := update(&existing, src); err != nil {
				slog.Warn("wallglass: update failed", "id", id, "error", err)
				continue
			}
			r.items[id] = existing
		}
	}
	return nil
}

// FlushPhase drops all pending-removed entries. Called at the
// Render:Update stage per §4.2 step 4.
func (r *RenderAssets[Source, R]) FlushPhase() {
	for _, id := range r.removed {
		delete(r.items, id)
	}
	r.removed = r.removed[:0]
}

func dedupe(ids []AssetId) []AssetId {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[AssetId]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
