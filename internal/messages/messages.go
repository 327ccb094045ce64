// internal/messages/messages.go
package messages

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed locales/*.json
var locales embed.FS

const DefaultLocale = "uz"

type Catalog struct {
	mu    sync.RWMutex
	texts map[string]string
}

var (
	instance *Catalog
	once     sync.Once
	loadErr  error
)

// Initialize loads the embedded catalog. T calls it lazily, so explicit
// calls only matter for surfacing a broken catalog at startup.
func Initialize() error {
	once.Do(func() {
		instance, loadErr = Load(DefaultLocale)
	})
	return loadErr
}

func Load(locale string) (*Catalog, error) {
	file := "locales/" + locale + ".json"
	data, err := locales.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
	}

	var texts map[string]string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal locale file %s: %w", file, err)
	}
	return &Catalog{texts: texts}, nil
}

func (c *Catalog) T(key string, args ...interface{}) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text, exists := c.texts[key]
	if !exists {
		// Return key if no translation found
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.texts[key]
	return ok
}

// Global functions
func T(key string, args ...interface{}) string {
	if err := Initialize(); err != nil {
		return key
	}
	return instance.T(key, args...)
}
