package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSentimentEmpty(t *testing.T) {
	a := NewSentimentAnalyzer(newTestProcessor(t))

	result := a.Analyze("")
	assert.Equal(t, SentimentNeutral, result.Label)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestAnalyzeSentimentPositive(t *testing.T) {
	a := NewSentimentAnalyzer(newTestProcessor(t))

	result := a.Analyze("壽險公司獲利成長，保費收入創新高，市場看好。")
	assert.Equal(t, SentimentPositive, result.Label)
	assert.Greater(t, result.Score, sentimentThreshold)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestAnalyzeSentimentNegative(t *testing.T) {
	a := NewSentimentAnalyzer(newTestProcessor(t))

	result := a.Analyze("壽險公司虧損擴大遭裁罰，理賠糾紛申訴暴增，保戶退保。")
	assert.Equal(t, SentimentNegative, result.Label)
	assert.Less(t, result.Score, -sentimentThreshold)
}

func TestAnalyzeSentimentNeutral(t *testing.T) {
	a := NewSentimentAnalyzer(newTestProcessor(t))

	result := a.Analyze("金管會公布保險業統計資料，揭露各公司保費數據。")
	assert.Equal(t, SentimentNeutral, result.Label)
}

// fixedTokenizer 返回固定词序列，用于精确控制极性词比例。
type fixedTokenizer struct{ tokens []string }

func (f *fixedTokenizer) Cut(string) []string                 { return f.tokens }
func (f *fixedTokenizer) RegisterDomainTerm(string, float64) error { return nil }

func TestAnalyzeSentimentExactScore(t *testing.T) {
	// 8 个词中 3 正 1 负：score = (3-1)/4 = 0.5
	tok := &fixedTokenizer{tokens: []string{
		"成長", "獲利", "創新", "虧損",
		"保費", "保單", "通路", "市場",
	}}
	a := NewSentimentAnalyzer(NewTextProcessor(tok))

	result := a.Analyze("佔位文本")
	assert.Equal(t, SentimentPositive, result.Label)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestAnalyzeSentimentBounds(t *testing.T) {
	a := NewSentimentAnalyzer(newTestProcessor(t))

	texts := []string{
		"獲利成長看好樂觀亮眼熱銷",
		"虧損下滑衰退惡化重創悲觀",
		"保費理賠保單通路",
	}
	for _, text := range texts {
		result := a.Analyze(text)
		require.GreaterOrEqual(t, result.Score, -1.0)
		require.LessOrEqual(t, result.Score, 1.0)
		require.GreaterOrEqual(t, result.Confidence, 0.0)
		require.LessOrEqual(t, result.Confidence, 1.0)
	}
}
