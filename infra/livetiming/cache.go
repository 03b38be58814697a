package livetiming

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// payloadCache stores raw session payloads on disk, keyed by season and
// event. Historical race data never changes, so entries have no expiry.
type payloadCache struct {
	dir string
}

func newPayloadCache(dir string) *payloadCache {
	if dir == "" {
		return nil
	}
	return &payloadCache{dir: dir}
}

func (c *payloadCache) get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *payloadCache) put(key string, data []byte) error {
	if c == nil {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), data, 0o644)
}

// cacheKey flattens an event name into a safe file name.
func cacheKey(year int, event string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(event) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strconv.Itoa(year) + "_" + strings.Trim(b.String(), "_") + ".json"
}
