package protocols

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/platinummonkey/declint/pkg/observability"
)

// DefaultCachePath is the cache file used when none is configured
const DefaultCachePath = ".protocols_cache.json"

// Cache maps protocol names to the file that declares them. It is loaded once and never
// modified afterwards.
type Cache struct {
	path    string
	entries map[string]string
}

// LoadCache reads the cache at path, resolved against the working directory. An empty
// path selects DefaultCachePath. A missing, unreadable or malformed cache file yields an
// empty cache; the failure is only logged.
func LoadCache(path string, logger *observability.Logger) *Cache {
	if path == "" {
		path = DefaultCachePath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if logger == nil {
		logger = observability.Discard()
	}

	c := &Cache{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithField("path", path).WithError(err).Debug("protocol cache unavailable")
		return c
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.WithField("path", path).WithError(err).Debug("protocol cache is not a string map")
		return c
	}
	for name, file := range entries {
		c.entries[name] = file
	}

	logger.WithFields(map[string]interface{}{"path": path, "protocols": len(c.entries)}).
		Debug("protocol cache loaded")
	return c
}

// NewCache builds a cache from an in-memory mapping
func NewCache(entries map[string]string) *Cache {
	c := &Cache{entries: make(map[string]string, len(entries))}
	for name, file := range entries {
		c.entries[name] = file
	}
	return c
}

// Lookup returns the file declaring typeName
func (c *Cache) Lookup(typeName string) (string, bool) {
	if c == nil {
		return "", false
	}
	path, ok := c.entries[typeName]
	return path, ok
}

// Path returns the absolute path the cache was loaded from
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Len returns the number of cached protocols
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
