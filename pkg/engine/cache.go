package engine

import (
	"encoding/json"

	"github.com/zeebo/blake3"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/inline"
)

type fingerprint [32]byte

// fragment is a rendered block that may be replayed within one conversion.
type fragment struct {
	html     string
	warnings []inline.Warning
}

// fragmentCache lives for a single Render call and is never shared.
type fragmentCache struct {
	entries map[fingerprint]fragment
}

func newFragmentCache() *fragmentCache {
	return &fragmentCache{entries: make(map[fingerprint]fragment)}
}

func (c *fragmentCache) get(key fingerprint) (fragment, bool) {
	f, ok := c.entries[key]
	return f, ok
}

func (c *fragmentCache) put(key fingerprint, f fragment) {
	c.entries[key] = f
}

// fingerprintOf hashes (type, variant, data). Data is encoded as JSON, which
// sorts map keys. Data that cannot be encoded is not cacheable.
func fingerprintOf(blockType, variant string, data block.Data) (fingerprint, bool) {
	payload, err := json.Marshal(data)
	if err != nil {
		tracer().Debugf("engine: %s block not cacheable: %v", blockType, err)
		return fingerprint{}, false
	}
	h := blake3.New()
	h.Write([]byte(blockType))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write(payload)

	var key fingerprint
	copy(key[:], h.Sum(nil))
	return key, true
}
