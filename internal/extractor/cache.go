package extractor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/maypok86/otter"
)

// FileCache memoizes rendered skeleton text per file on disk, keyed by the
// file's identity (path, size, modification time). A re-render of an
// unchanged file is a cache hit; any write to the file changes the key and
// the stale entry ages out of the cache.
type FileCache struct {
	dispatcher *Dispatcher
	cache      otter.Cache[string, string]
}

// NewFileCache creates a cache of up to capacity rendered skeletons in front
// of the given dispatcher.
func NewFileCache(dispatcher *Dispatcher, capacity int) (*FileCache, error) {
	cache, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("build skeleton cache: %w", err)
	}
	return &FileCache{dispatcher: dispatcher, cache: cache}, nil
}

// ExtractFile reads path and renders its skeleton, serving repeated calls for
// an unchanged file from the cache. ok is false when the file cannot be read
// or no skeleton can be extracted; failures are never cached.
func (c *FileCache) ExtractFile(path string, verbose bool) (text string, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	key := fmt.Sprintf("%s|%d|%d|%t", path, info.Size(), info.ModTime().UnixNano(), verbose)
	if cached, found := c.cache.Get(key); found {
		return cached, true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	text, ok = c.dispatcher.ExtractSkeleton(filepath.Base(path), string(content), verbose)
	if !ok {
		return "", false
	}

	c.cache.Set(key, text)
	return text, true
}

// Close releases the cache's resources.
func (c *FileCache) Close() {
	c.cache.Close()
}
