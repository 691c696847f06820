package analyzer

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ins-news-go/internal/model"
	"ins-news-go/pkg/log"
)

// AnalysisCache 是两级分析结果缓存：内存 map 加速、本地磁盘兜底，
// 两级共用 (category, key) 键空间。磁盘是持久层，内存条目永远不比
// 磁盘对应文件旧；文件 mtime 即写入时间，用于 TTL 判定。
//
// 内存层超过容量时淘汰最早写入的条目（FIFO，按插入顺序；重写同键
// 视为一次新插入移到队尾，读取不改变顺序）。淘汰不触碰磁盘层。
//
// 所有修改共用同一把锁；磁盘命中后的内存晋升同样需要独占。
type AnalysisCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	order    []string // 内存键的插入顺序，队首最旧
	capacity int
	ttl      time.Duration
	dir      string

	memHits  uint64
	diskHits uint64
	misses   uint64

	now func() time.Time // 测试可注入时钟
}

type cacheEntry struct {
	payload    []byte
	insertedAt time.Time
}

// CacheStats 是 GetStats 返回的缓存统计。
type CacheStats struct {
	MemoryHits    uint64                   `json:"memoryHits"`
	DiskHits      uint64                   `json:"diskHits"`
	Misses        uint64                   `json:"misses"`
	HitRatio      float64                  `json:"hitRatio"`
	MemoryEntries int                      `json:"memoryEntries"`
	Capacity      int                      `json:"capacity"`
	TTLSeconds    float64                  `json:"ttlSeconds"`
	Categories    map[string]CategoryStats `json:"categories"`
}

// CategoryStats 是单个缓存类别在磁盘上的文件数与体积。
type CategoryStats struct {
	FileCount int   `json:"fileCount"`
	SizeBytes int64 `json:"sizeBytes"`
}

// NewAnalysisCache 创建缓存实例并确保磁盘目录存在。
// 磁盘目录不可用时降级为纯内存缓存并告警。
func NewAnalysisCache(dir string, capacity int, ttl time.Duration) *AnalysisCache {
	if capacity < 1 {
		capacity = 1
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warnf("[cache] 创建缓存目录失败 (%s): %v，降级为纯内存缓存", dir, err)
			dir = ""
		}
	}
	return &AnalysisCache{
		entries:  make(map[string]*cacheEntry),
		capacity: capacity,
		ttl:      ttl,
		dir:      dir,
		now:      time.Now,
	}
}

// ArticleCacheKey 对文章做显式、带类型的键派生：
// 时间戳转成 RFC3339，其余字段原样，按键名排序序列化后取 MD5。
func ArticleCacheKey(article *model.Article) string {
	payload := map[string]string{
		"title":   article.Title,
		"content": article.Content,
		"summary": article.Summary,
		"source":  article.Source,
	}
	if article.PublishedAt != nil {
		payload["published_at"] = article.PublishedAt.UTC().Format(time.RFC3339)
	}
	// encoding/json 对 map 按键名排序，序列化结果是规范化的。
	data, _ := json.Marshal(payload)
	return fmt.Sprintf("%x", md5.Sum(data))
}

// TextCacheKey 对一段文本与操作名派生缓存键，供子操作缓存使用。
func TextCacheKey(op, text string) string {
	data, _ := json.Marshal(map[string]string{"op": op, "text": text})
	return fmt.Sprintf("%x", md5.Sum(data))
}

// Get 取缓存：先查内存（过期则就地删除），内存未命中再查磁盘，
// 磁盘命中会把条目晋升回内存层。未命中返回 (nil, false)。
func (c *AnalysisCache) Get(category, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	memKey := category + "/" + key
	if entry, ok := c.entries[memKey]; ok {
		if c.now().Sub(entry.insertedAt) < c.ttl {
			c.memHits++
			return entry.payload, true
		}
		c.removeMemLocked(memKey)
	}

	if payload, ok := c.readDisk(category, key); ok {
		c.insertMemLocked(memKey, payload)
		c.diskHits++
		return payload, true
	}

	c.misses++
	return nil, false
}

// Set 写缓存：写内存（可能触发淘汰）并透写磁盘。
// 磁盘写失败只影响该条目的持久化，不向调用方报错。
func (c *AnalysisCache) Set(category, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.insertMemLocked(category+"/"+key, payload)
	c.writeDisk(category, key, payload)
}

// insertMemLocked 插入内存条目并维护 FIFO 顺序；须持锁调用。
func (c *AnalysisCache) insertMemLocked(memKey string, payload []byte) {
	if _, ok := c.entries[memKey]; ok {
		// 重写同键视为一次新插入，移到队尾。
		c.removeFromOrder(memKey)
	}
	c.entries[memKey] = &cacheEntry{payload: payload, insertedAt: c.now()}
	c.order = append(c.order, memKey)

	for len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.removeMemLocked(oldest)
	}
}

func (c *AnalysisCache) removeMemLocked(memKey string) {
	delete(c.entries, memKey)
	c.removeFromOrder(memKey)
}

func (c *AnalysisCache) removeFromOrder(memKey string) {
	for i, k := range c.order {
		if k == memKey {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *AnalysisCache) diskPath(category, key string) string {
	return filepath.Join(c.dir, category, key+".cache")
}

// readDisk 读磁盘层，文件 mtime 在 TTL 内才算命中。
func (c *AnalysisCache) readDisk(category, key string) ([]byte, bool) {
	if c.dir == "" {
		return nil, false
	}
	path := c.diskPath(category, key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(info.ModTime()) >= c.ttl {
		return nil, false
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("[cache] 读取缓存文件失败 (%s): %v", path, err)
		return nil, false
	}
	return payload, true
}

// writeDisk 透写磁盘层，失败降级为仅内存缓存该条目。
func (c *AnalysisCache) writeDisk(category, key string, payload []byte) {
	if c.dir == "" {
		return
	}
	categoryDir := filepath.Join(c.dir, category)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		log.Warnf("[cache] 创建类别目录失败 (%s): %v", categoryDir, err)
		return
	}
	path := c.diskPath(category, key)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Warnf("[cache] 写入缓存文件失败 (%s): %v", path, err)
	}
}

// ClearCategory 清空某个类别下两级的全部条目。
func (c *AnalysisCache) ClearCategory(category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := category + "/"
	for memKey := range c.entries {
		if strings.HasPrefix(memKey, prefix) {
			c.removeMemLocked(memKey)
		}
	}

	if c.dir == "" {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(c.dir, category)); err != nil {
		return fmt.Errorf("清理缓存类别 %q 失败: %w", category, err)
	}
	return nil
}

// ClearExpired 扫描两级缓存，删除超过 TTL 的条目，返回删除总数。
func (c *AnalysisCache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for memKey, entry := range c.entries {
		if now.Sub(entry.insertedAt) >= c.ttl {
			c.removeMemLocked(memKey)
			removed++
		}
	}

	if c.dir == "" {
		return removed
	}
	categories, err := os.ReadDir(c.dir)
	if err != nil {
		log.Warnf("[cache] 扫描缓存目录失败 (%s): %v", c.dir, err)
		return removed
	}
	for _, categoryDir := range categories {
		if !categoryDir.IsDir() {
			continue
		}
		dirPath := filepath.Join(c.dir, categoryDir.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}
		for _, f := range files {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if now.Sub(info.ModTime()) >= c.ttl {
				if err := os.Remove(filepath.Join(dirPath, f.Name())); err == nil {
					removed++
				}
			}
		}
	}
	return removed
}

// GetStats 汇总两级缓存的命中统计与磁盘占用。
func (c *AnalysisCache) GetStats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		MemoryHits:    c.memHits,
		DiskHits:      c.diskHits,
		Misses:        c.misses,
		MemoryEntries: len(c.entries),
		Capacity:      c.capacity,
		TTLSeconds:    c.ttl.Seconds(),
		Categories:    map[string]CategoryStats{},
	}
	total := c.memHits + c.diskHits + c.misses
	if total > 0 {
		stats.HitRatio = float64(c.memHits+c.diskHits) / float64(total)
	}

	if c.dir == "" {
		return stats
	}
	categories, err := os.ReadDir(c.dir)
	if err != nil {
		return stats
	}
	for _, categoryDir := range categories {
		if !categoryDir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(c.dir, categoryDir.Name()))
		if err != nil {
			continue
		}
		cs := CategoryStats{}
		for _, f := range files {
			if info, err := f.Info(); err == nil {
				cs.FileCount++
				cs.SizeBytes += info.Size()
			}
		}
		stats.Categories[categoryDir.Name()] = cs
	}
	return stats
}

// CacheOrCompute 是显式的 cache-aside 帮助函数：
// 命中则反序列化返回缓存值，未命中则计算、写缓存后返回。
// 缓存层的任何失败只影响性能，不影响计算结果。
func CacheOrCompute[T any](cache *AnalysisCache, category, key string, compute func() (T, error)) (T, error) {
	if payload, ok := cache.Get(category, key); ok {
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		log.Warnf("[cache] 缓存条目反序列化失败 (%s/%s)，按未命中处理", category, key)
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if payload, err := json.Marshal(value); err == nil {
		cache.Set(category, key, payload)
	} else {
		log.Warnf("[cache] 计算结果序列化失败 (%s/%s)，跳过写缓存: %v", category, key, err)
	}
	return value, nil
}
