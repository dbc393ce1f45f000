package catalog_store

import (
	"sync"
)

type cacheKey struct {
	catalogType string
	filename    string
}

// CatalogCache 目录文件读取缓存，按 (目录类型, 文件名) 缓存原始字节
// 没有过期时间，每次写入后必须显式失效
type CatalogCache struct {
	mu    sync.RWMutex
	items map[cacheKey][]byte
}

// NewCatalogCache 创建缓存服务
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{items: make(map[cacheKey][]byte)}
}

// Get 读取缓存
func (c *CatalogCache) Get(catalogType, filename string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.items[cacheKey{catalogType, filename}]
	return data, ok
}

// Put 写入缓存
func (c *CatalogCache) Put(catalogType, filename string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey{catalogType, filename}] = data
}

// Invalidate 使单个文件的缓存失效
func (c *CatalogCache) Invalidate(catalogType, filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, cacheKey{catalogType, filename})
}

// InvalidateType 使某目录类型的全部缓存失效
func (c *CatalogCache) InvalidateType(catalogType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if key.catalogType == catalogType {
			delete(c.items, key)
		}
	}
}

// Len 缓存条目数
func (c *CatalogCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
