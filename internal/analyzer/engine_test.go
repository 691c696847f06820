package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ins-news-go/internal/model"
)

func TestAnalyzeArticle(t *testing.T) {
	e := newTestEngine(t)
	published := time.Now().Add(-2 * time.Hour)
	article := &model.Article{
		Title:       "金管會重罰壽險公司",
		Content:     "金管會保險局公布裁罰案，壽險公司準備金提存不足遭罰款，保戶理賠權益引發關注。",
		Source:      "經濟日報",
		PublishedAt: &published,
	}

	result, err := e.AnalyzeArticle(article)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Keywords)
	assert.Contains(t, []string{SentimentPositive, SentimentNegative, SentimentNeutral}, result.Sentiment.Label)
	assert.NotEmpty(t, result.Category.Label)
	assert.GreaterOrEqual(t, result.Importance.FinalScore, 0.0)
	assert.LessOrEqual(t, result.Importance.FinalScore, 1.0)
	assert.NotEmpty(t, result.BusinessImpact.Type)
	assert.NotEmpty(t, result.BusinessImpact.Action)
	assert.NotEmpty(t, result.ClientInterest.Reason)
	assert.Equal(t, len([]rune(article.Content)), result.TextStats.WordCount)
	assert.GreaterOrEqual(t, result.TextStats.ReadingTimeMinutes, 1)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestAnalyzeArticleCached(t *testing.T) {
	e := newTestEngine(t)
	article := &model.Article{Title: "金管會公布裁罰案", Content: "壽險公司準備金不足。"}

	first, err := e.AnalyzeArticle(article)
	require.NoError(t, err)
	second, err := e.AnalyzeArticle(article)
	require.NoError(t, err)

	assert.Equal(t, first.AnalyzedAt.Unix(), second.AnalyzedAt.Unix(), "第二次调用应命中缓存")

	stats := e.Cache().GetStats()
	assert.Equal(t, uint64(1), stats.MemoryHits+stats.DiskHits)
}

func TestClassifyCategory(t *testing.T) {
	e := newTestEngine(t)

	result := e.ClassifyCategory("金管會公布裁罰案，要求修法並增提準備金。")
	assert.Equal(t, CategoryRegulatory, result.Label)
	assert.Greater(t, result.Confidence, 0.0)
	assert.Len(t, result.Scores, len(defaultKeywordTable))

	unknown := e.ClassifyCategory("今天天氣晴朗。")
	assert.Equal(t, unknownCategory, unknown.Label)
	assert.Equal(t, 0.0, unknown.Confidence)
}

func TestEngineTextStats(t *testing.T) {
	e := newTestEngine(t)

	short := e.textStats(&model.Article{Content: "短文"})
	assert.Equal(t, 2, short.WordCount)
	assert.Equal(t, 1, short.ReadingTimeMinutes, "阅读时间至少 1 分钟")

	var long string
	for i := 0; i < 900; i++ {
		long += "字"
	}
	stats := e.textStats(&model.Article{Content: long})
	assert.Equal(t, 900, stats.WordCount)
	assert.Equal(t, 3, stats.ReadingTimeMinutes, "900 字按每分钟 400 字向上取整")
}

func TestExtractKeywordsDefaultTopK(t *testing.T) {
	e := newTestEngine(t)

	keywords := e.ExtractKeywords("金管會公布裁罰案，壽險公司準備金不足，理賠爭議與保費調漲引發保戶關注。", -1)
	assert.LessOrEqual(t, len(keywords), defaultTopK, "非法 topK 应回退到默认值")
}
