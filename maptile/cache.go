// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package maptile

import (
	"hash/fnv"

	"github.com/gogpu/gg/cache"
	"github.com/gogpu/gg/labels"
)

// tileKey identifies a tile by its source layer and XYZ coordinate, the
// same pair labels.TileCache.Contains is queried with.
type tileKey struct {
	sourceID int32
	id       labels.TileID
}

// hashTileKey hashes a tileKey for ShardedCache's shard selection,
// grounded on cache.StringHasher/IntHasher's FNV-1a convention rather
// than a hand-rolled mix.
func hashTileKey(k tileKey) uint64 {
	h := fnv.New64a()
	buf := [20]byte{}
	putInt32(buf[0:4], k.sourceID)
	putInt32(buf[4:8], k.id.X)
	putInt32(buf[8:12], k.id.Y)
	putInt32(buf[12:16], k.id.Z)
	_, _ = h.Write(buf[:16])
	return h.Sum64()
}

func putInt32(b []byte, v int32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// TileCache is a concurrency-safe, LRU-evicting cache of loaded tiles,
// backed by the sharded cache used elsewhere in this module for
// high-contention lookups. It implements labels.TileCache so the engine
// can discover proxy tiles during zoom transitions (spec.md §4.9)
// without the map-tile layer hand-rolling its own eviction policy.
type TileCache struct {
	tiles *cache.ShardedCache[tileKey, *Tile]
}

// NewTileCache creates a tile cache holding up to capacityPerShard
// tiles per internal shard (roughly capacityPerShard*16 tiles total,
// per cache.ShardedCache's sharding scheme).
func NewTileCache(capacityPerShard int) *TileCache {
	return &TileCache{tiles: cache.NewSharded[tileKey, *Tile](capacityPerShard, hashTileKey)}
}

// Put inserts or replaces the cached tile for (sourceID, id).
func (c *TileCache) Put(sourceID int32, id labels.TileID, tile *Tile) {
	c.tiles.Set(tileKey{sourceID: sourceID, id: id}, tile)
}

// Evict removes the cached tile for (sourceID, id), if present.
func (c *TileCache) Evict(sourceID int32, id labels.TileID) {
	c.tiles.Delete(tileKey{sourceID: sourceID, id: id})
}

// Contains implements labels.TileCache.
func (c *TileCache) Contains(sourceID int32, id labels.TileID) (labels.Tile, bool) {
	tile, ok := c.tiles.Get(tileKey{sourceID: sourceID, id: id})
	if !ok {
		return nil, false
	}
	return tile, true
}
