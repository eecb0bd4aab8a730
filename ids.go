// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import "sync/atomic"

// AssetId uniquely identifies an asset stored in an Assets[T] registry.
// Unlike the engine's entity identifiers, an AssetId is never recycled:
// once minted it stays unique for the life of the process, even after
// the asset it names has been removed.
type AssetId uint64

// idGenerator mints AssetIds for a single registry. The zero value is
// ready to use and never yields zero, which is reserved to mean "no id".
type idGenerator struct {
	next atomic.Uint64
}

// alloc returns the next unused AssetId for this generator.
func (g *idGenerator) alloc() AssetId {
	return AssetId(g.next.Add(1))
}
