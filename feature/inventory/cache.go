package inventory

import (
	"sort"
	"strings"
	"sync"

	"brandstock/feature/inventory/models"
)

// Cache holds the full item set for one brand context.
// It is shared between the mutation coordinator, the reload path and the
// event merger; all access goes through the lock.
type Cache struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]models.Item)}
}

// ReplaceAll swaps in a full brand reload.
func (c *Cache) ReplaceAll(items []models.Item) {
	next := make(map[string]models.Item, len(items))
	for _, it := range items {
		next[it.ID] = it
	}
	c.mu.Lock()
	c.items = next
	c.mu.Unlock()
}

// Get returns a copy of the cached item.
func (c *Cache) Get(id string) (models.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[id]
	return it, ok
}

// Has reports whether the item is present without copying it.
func (c *Cache) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[id]
	return ok
}

// ApplyLocal mutates the cached copy in place. Returns false if the item is
// not cached; fn is not called in that case.
func (c *Cache) ApplyLocal(id string, fn func(*models.Item)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[id]
	if !ok {
		return false
	}
	fn(&it)
	c.items[id] = it
	return true
}

// Append adds or overwrites a single item.
func (c *Cache) Append(item models.Item) {
	c.mu.Lock()
	c.items[item.ID] = item
	c.mu.Unlock()
}

// Remove drops a single item.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// SortedView returns the presentation ordering: active items first, then
// alphabetical by name ignoring case. The ordering is recomputed on every
// call and never stored.
func (c *Cache) SortedView() []models.Item {
	c.mu.RLock()
	view := make([]models.Item, 0, len(c.items))
	for _, it := range c.items {
		view = append(view, it)
	}
	c.mu.RUnlock()

	sort.Slice(view, func(i, j int) bool {
		if view[i].IsActive != view[j].IsActive {
			return view[i].IsActive
		}
		ni, nj := strings.ToLower(view[i].Name), strings.ToLower(view[j].Name)
		if ni != nj {
			return ni < nj
		}
		return view[i].ID < view[j].ID
	})
	return view
}
