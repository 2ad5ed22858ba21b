package ingest

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"mribeiro/extrato-csv/internal/models"
)

// Cache remembers computed batches across repeated interactions so the same
// file set is not re-extracted. It is keyed by the sorted set of input file
// names and only ever invalidated explicitly by the caller.
type Cache struct {
	mu       sync.Mutex
	ledger   map[string]*models.ImportBatch
	contacts map[string]*models.ContactBatch
}

// NewCache creates an empty batch cache.
func NewCache() *Cache {
	return &Cache{
		ledger:   make(map[string]*models.ImportBatch),
		contacts: make(map[string]*models.ContactBatch),
	}
}

// SourceKey derives the cache identity of a file set: sorted base names
// joined with '|'. Order of the input slice does not matter.
func SourceKey(files []string) string {
	names := SourceSet(files)
	return strings.Join(names, "|")
}

// SourceSet returns the sorted base names of the given files.
func SourceSet(files []string) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) getLedger(key string) (*models.ImportBatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.ledger[key]
	return b, ok
}

func (c *Cache) putLedger(key string, batch *models.ImportBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger[key] = batch
}

func (c *Cache) getContacts(key string) (*models.ContactBatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.contacts[key]
	return b, ok
}

func (c *Cache) putContacts(key string, batch *models.ContactBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contacts[key] = batch
}

// Invalidate drops any cached batch computed for the given file set.
func (c *Cache) Invalidate(files []string) {
	key := SourceKey(files)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.ledger {
		if strings.HasSuffix(k, key) {
			delete(c.ledger, k)
		}
	}
	delete(c.contacts, key)
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger = make(map[string]*models.ImportBatch)
	c.contacts = make(map[string]*models.ContactBatch)
}
