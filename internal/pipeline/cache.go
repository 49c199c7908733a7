package pipeline

import (
	"container/list"
	"sync"
)

// renderCache is a thread-safe LRU of rendered views keyed by dataset version,
// view, and palette. Old versions age out naturally once a refresh lands.
type renderCache struct {
	maxEntries int

	mu    sync.Mutex
	order *list.List // front = most recently used
	items map[string]*list.Element
}

type cached struct {
	key  string
	body []byte
}

func newRenderCache(maxEntries int) *renderCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &renderCache{
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
	}
}

func (c *renderCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cached).body, true
}

func (c *renderCache) put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cached).body = body
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cached{key: key, body: body})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cached).key)
	}
}

func (c *renderCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
