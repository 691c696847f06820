package analyzer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ins-news-go/internal/model"
)

func TestCacheRoundtrip(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)

	_, ok := c.Get("analysis", "k1")
	assert.False(t, ok)

	c.Set("analysis", "k1", []byte(`{"v":1}`))
	payload, ok := c.Get("analysis", "k1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"v":1}`), payload)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("analysis", "k1", []byte("v1"))

	// TTL 内命中
	_, ok := c.Get("analysis", "k1")
	require.True(t, ok)

	// 时钟拨过 TTL 后，内存与磁盘都应判定过期
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok = c.Get("analysis", "k1")
	assert.False(t, ok)
}

func TestCacheFIFOEvictionFallsBackToDisk(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 2, time.Hour)

	c.Set("analysis", "k1", []byte("v1"))
	c.Set("analysis", "k2", []byte("v2"))
	c.Set("analysis", "k3", []byte("v3")) // 淘汰 k1 的内存条目

	stats := c.GetStats()
	assert.Equal(t, 2, stats.MemoryEntries)

	// k1 从磁盘命中并晋升回内存
	payload, ok := c.Get("analysis", "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), payload)

	stats = c.GetStats()
	assert.Equal(t, uint64(1), stats.DiskHits)
}

func TestCacheResetMovesToBack(t *testing.T) {
	c := NewAnalysisCache("", 2, time.Hour) // 纯内存，淘汰即丢失

	c.Set("analysis", "k1", []byte("v1"))
	c.Set("analysis", "k2", []byte("v2"))
	c.Set("analysis", "k1", []byte("v1b")) // 重写 k1，移到队尾
	c.Set("analysis", "k3", []byte("v3"))  // 应淘汰 k2 而不是 k1

	_, ok := c.Get("analysis", "k1")
	assert.True(t, ok, "重写过的键不应最先被淘汰")
	_, ok = c.Get("analysis", "k2")
	assert.False(t, ok)
}

func TestCacheClearCategory(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)

	c.Set("analysis", "k1", []byte("v1"))
	c.Set("keywords", "k2", []byte("v2"))

	require.NoError(t, c.ClearCategory("analysis"))

	_, ok := c.Get("analysis", "k1")
	assert.False(t, ok)
	_, ok = c.Get("keywords", "k2")
	assert.True(t, ok, "其他类别不受影响")
}

func TestCacheClearExpired(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("analysis", "old", []byte("v1"))

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	c.Set("analysis", "fresh", []byte("v2"))

	removed := c.ClearExpired()
	// 内存条目和对应磁盘文件都会被计数
	assert.GreaterOrEqual(t, removed, 1)

	_, ok := c.Get("analysis", "fresh")
	assert.True(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)

	c.Set("analysis", "k1", []byte("v1"))
	c.Get("analysis", "k1")   // 内存命中
	c.Get("analysis", "nope") // 未命中

	stats := c.GetStats()
	assert.Equal(t, uint64(1), stats.MemoryHits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
	assert.Equal(t, time.Hour.Seconds(), stats.TTLSeconds)
	require.Contains(t, stats.Categories, "analysis")
	assert.Equal(t, 1, stats.Categories["analysis"].FileCount)
}

func TestArticleCacheKeyStable(t *testing.T) {
	published := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	a := &model.Article{Title: "標題", Content: "內容", Source: "來源", PublishedAt: &published}
	b := &model.Article{Title: "標題", Content: "內容", Source: "來源", PublishedAt: &published}

	assert.Equal(t, ArticleCacheKey(a), ArticleCacheKey(b), "相同内容应派生相同键")

	c := &model.Article{Title: "標題", Content: "內容變了", Source: "來源", PublishedAt: &published}
	assert.NotEqual(t, ArticleCacheKey(a), ArticleCacheKey(c))

	noTime := &model.Article{Title: "標題", Content: "內容", Source: "來源"}
	assert.NotEqual(t, ArticleCacheKey(a), ArticleCacheKey(noTime), "缺失发布时间应派生不同键")
}

func TestCacheOrCompute(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)

	calls := 0
	compute := func() (model.SentimentResult, error) {
		calls++
		return model.SentimentResult{Label: SentimentPositive, Score: 0.5}, nil
	}

	first, err := CacheOrCompute(c, "sentiment", "k1", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	second, err := CacheOrCompute(c, "sentiment", "k1", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "命中缓存时不应重新计算")
	assert.Equal(t, first, second)
}

func TestCacheOrComputeError(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)

	wantErr := errors.New("計算失敗")
	_, err := CacheOrCompute(c, "sentiment", "k1", func() (model.SentimentResult, error) {
		return model.SentimentResult{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	_, ok := c.Get("sentiment", "k1")
	assert.False(t, ok, "计算失败不应写缓存")
}

func TestCacheOrComputeCorruptEntry(t *testing.T) {
	c := NewAnalysisCache(t.TempDir(), 10, time.Hour)
	c.Set("sentiment", "k1", []byte("not-json"))

	result, err := CacheOrCompute(c, "sentiment", "k1", func() (model.SentimentResult, error) {
		return model.SentimentResult{Label: SentimentNeutral}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, SentimentNeutral, result.Label, "损坏条目应按未命中重新计算")
}
