package scraper

import (
	"container/list"
	"sync"
	"time"

	"pagebrief/internal/models"
)

type pageCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
}

type pageCacheEntry struct {
	key       string
	content   models.ScrapedContent
	expiresAt time.Time
}

func newPageCache(maxEntries int) *pageCache {
	if maxEntries <= 0 {
		return nil
	}

	return &pageCache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *pageCache) get(key string, now time.Time) (models.ScrapedContent, bool) {
	if c == nil || key == "" {
		return models.ScrapedContent{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return models.ScrapedContent{}, false
	}

	entry, ok := elem.Value.(*pageCacheEntry)
	if !ok {
		return models.ScrapedContent{}, false
	}

	if now.After(entry.expiresAt) {
		c.removeElement(elem)

		return models.ScrapedContent{}, false
	}

	c.order.MoveToFront(elem)

	return entry.content, true
}

func (c *pageCache) set(
	key string,
	content models.ScrapedContent,
	expiresAt time.Time,
	now time.Time,
) {
	if c == nil || key == "" || content.Text == "" || expiresAt.IsZero() {
		return
	}

	if !expiresAt.After(now) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry, castOk := elem.Value.(*pageCacheEntry)
		if !castOk {
			return
		}

		entry.content = content
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)

		return
	}

	elem := c.order.PushFront(&pageCacheEntry{
		key:       key,
		content:   content,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	c.evictExpiredLocked(now)
	c.enforceSizeLimitLocked()
}

func (c *pageCache) evictExpiredLocked(now time.Time) {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()

		if entry, ok := elem.Value.(*pageCacheEntry); ok && now.After(entry.expiresAt) {
			c.removeElement(elem)
		}

		elem = prev
	}
}

func (c *pageCache) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *pageCache) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*pageCacheEntry)
	if !ok {
		return
	}

	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
