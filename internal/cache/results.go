package cache

import (
	"encoding/json"
	"time"

	"github.com/pranjul332/TrustLens/internal/model"
)

// Results is the layered (memory over disk) store for sanitized analysis
// results, keyed by product URL.
type Results struct {
	memory Cache
	disk   Cache
}

// NewResults creates the layered result cache. diskDir may be empty to run
// memory-only.
func NewResults(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Results {
	r := &Results{memory: NewMemory(memoryTTL, 10*time.Minute)}
	if diskDir != "" {
		r.disk = NewDisk(diskDir, diskTTL)
	}
	return r
}

// Get returns the cached result for a product URL. A disk hit is promoted to
// the memory layer.
func (r *Results) Get(productURL string) (model.AnalysisResult, bool) {
	key := Key(productURL)

	data, found := r.memory.Get(key)
	if !found && r.disk != nil {
		if data, found = r.disk.Get(key); found {
			_ = r.memory.Set(key, data, 0)
		}
	}
	if !found {
		return model.AnalysisResult{}, false
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = r.Delete(productURL)
		return model.AnalysisResult{}, false
	}
	return result, true
}

// Put stores a sanitized result in both layers
func (r *Results) Put(productURL string, result model.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := Key(productURL)
	if err := r.memory.Set(key, data, 0); err != nil {
		return err
	}
	if r.disk != nil {
		return r.disk.Set(key, data, 0)
	}
	return nil
}

// Delete drops the entry for a product URL from both layers
func (r *Results) Delete(productURL string) error {
	key := Key(productURL)
	_ = r.memory.Delete(key)
	if r.disk != nil {
		_ = r.disk.Delete(key)
	}
	return nil
}
