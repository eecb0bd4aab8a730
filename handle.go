// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import "sync/atomic"

// AssetHandle is a reference-counted claim on the asset named by Id.
// Cloning shares ownership; the asset is only eligible for removal once
// every clone has been released. Releasing the last clone enqueues a
// drop event on the owning Assets[T] registry's channel instead of
// removing the asset directly, since the registry may be read
// concurrently with handles being released.
type AssetHandle[T any] struct {
	Id    AssetId
	count *atomic.Int32
	drop  chan<- AssetId
}

// newHandle creates the first handle for an asset just added to a
// registry. count starts at 1, matching the one returned handle.
func newHandle[T any](id AssetId, drop chan<- AssetId) AssetHandle[T] {
	count := &atomic.Int32{}
	count.Store(1)
	return AssetHandle[T]{Id: id, count: count, drop: drop}
}

// Clone returns a new handle sharing ownership of the same asset.
// The asset will not be dropped until every clone, including this one,
// has been released.
func (h AssetHandle[T]) Clone() AssetHandle[T] {
	h.count.Add(1)
	return AssetHandle[T]{Id: h.Id, count: h.count, drop: h.drop}
}

// Release relinquishes this handle's claim on the asset. When the last
// outstanding clone is released, a drop event for Id is enqueued on the
// owning registry's drop channel; the registry erases the asset the
// next time it drains that channel (normally at PostExtract).
//
// Release must be called at most once per handle value; a handle is not
// usable after Release.
func (h AssetHandle[T]) Release() {
	if h.count.Add(-1) != 0 {
		return
	}
	select {
	case h.drop <- h.Id:
	default:
		// channel is buffered large enough in practice; a full channel
		// here means drain_drops has fallen behind more than one frame.
	}
}
