package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ins-news-go/internal/model"
)

func newTestRater(t *testing.T) *ImportanceRater {
	t.Helper()
	return NewImportanceRater(defaultKeywordTable, newTestProcessor(t))
}

func TestRateBounds(t *testing.T) {
	r := newTestRater(t)
	now := time.Now()
	published := now.Add(-2 * time.Hour)

	articles := []*model.Article{
		{Title: "無關內容", Content: "今天天氣晴朗。"},
		{Title: "金管會裁罰", Content: "金管會對壽險公司開罰，要求增提準備金。", PublishedAt: &published},
		{},
	}
	for _, a := range articles {
		result := r.Rate(a, now)
		require.GreaterOrEqual(t, result.FinalScore, 0.0)
		require.LessOrEqual(t, result.FinalScore, 1.0)
		for _, dim := range []float64{
			result.Dimensions.Regulatory, result.Dimensions.Business,
			result.Dimensions.Timeliness, result.Dimensions.Client, result.Dimensions.Trend,
		} {
			require.GreaterOrEqual(t, dim, 0.0)
			require.LessOrEqual(t, dim, 1.0)
		}
		require.Contains(t, []string{LevelHigh, LevelMedium, LevelLow}, result.Level)
	}
}

func TestRateRegulatoryArticle(t *testing.T) {
	r := newTestRater(t)
	now := time.Now()
	published := now.Add(-3 * time.Hour)

	article := &model.Article{
		Title:       "金管會重罰壽險業",
		Content:     "金管會保險局公布裁罰案，指壽險公司資本適足率不足，要求增提準備金並修正法規遵循缺失。",
		PublishedAt: &published,
	}
	result := r.Rate(article, now)

	dims := result.Dimensions
	assert.Equal(t, 1.0, dims.Timeliness, "一天内的文章时效性应为满分")
	assert.GreaterOrEqual(t, dims.Regulatory, dims.Business)
	assert.GreaterOrEqual(t, dims.Regulatory, dims.Trend)
	assert.Contains(t, []string{LevelMedium, LevelHigh}, result.Level)
}

func TestTimelinessScore(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		daysAgo float64
		want    float64
	}{
		{0.5, 1.0},
		{1.5, 0.9},
		{2.5, 0.8},
		{4, 0.7},
		{6, 0.6},
		{10, 0.4},
		{20, 0.3},
		{90, 0.2},
	}
	for _, tc := range cases {
		published := now.Add(-time.Duration(tc.daysAgo * 24 * float64(time.Hour)))
		assert.Equal(t, tc.want, timelinessScore(&published, now), "daysAgo=%v", tc.daysAgo)
	}

	assert.Equal(t, 0.5, timelinessScore(nil, now), "缺失发布时间取中间值")
	zero := time.Time{}
	assert.Equal(t, 0.5, timelinessScore(&zero, now))
}

func TestImportanceLevel(t *testing.T) {
	assert.Equal(t, LevelHigh, importanceLevel(0.75))
	assert.Equal(t, LevelHigh, importanceLevel(0.9))
	assert.Equal(t, LevelMedium, importanceLevel(0.4))
	assert.Equal(t, LevelMedium, importanceLevel(0.74))
	assert.Equal(t, LevelLow, importanceLevel(0.39))
	assert.Equal(t, LevelLow, importanceLevel(0.0))
}

func TestBusinessImpact(t *testing.T) {
	r := newTestRater(t)
	now := time.Now()
	published := now.Add(-time.Hour)

	article := &model.Article{
		Title:       "金管會裁罰壽險公司",
		Content:     "金管會公布裁罰案並要求改善法規遵循，限期申報改善計畫並接受檢查。",
		PublishedAt: &published,
	}
	impact := r.BusinessImpact(article, now)

	assert.Equal(t, "法規遵循", impact.Type)
	assert.True(t, strings.HasPrefix(impact.Action, impactActions["法規遵循"]))
	assert.GreaterOrEqual(t, impact.Score, 0.0)
	assert.LessOrEqual(t, impact.Score, 1.0)
	assert.Contains(t, []string{LevelHigh, LevelMedium, LevelLow}, impact.Level)
	assert.Contains(t, []string{"亟需關注", "建議關注", "可作參考"}, impact.Urgency)
}

func TestBusinessImpactDefault(t *testing.T) {
	r := newTestRater(t)

	impact := r.BusinessImpact(&model.Article{Title: "今日天氣", Content: "晴時多雲偶陣雨。"}, time.Now())
	assert.Equal(t, "一般業務", impact.Type)
	assert.Empty(t, impact.SecondaryType)
	assert.Equal(t, impactActions["一般業務"], impact.Action)
}

func TestClientInterest(t *testing.T) {
	r := newTestRater(t)
	now := time.Now()
	published := now.Add(-time.Hour)

	article := &model.Article{
		Title:       "醫療險理賠爭議增加",
		Content:     "醫療險實支實付理賠申請件數上升，保戶關注理賠金給付與住院給付權益。",
		PublishedAt: &published,
	}
	interest := r.ClientInterest(article, now)

	assert.GreaterOrEqual(t, interest.Score, 0.0)
	assert.LessOrEqual(t, interest.Score, 1.0)
	assert.NotEmpty(t, interest.Categories, "命中保户关注面向时应给出类别")
	assert.NotEqual(t, clientReasonNone, interest.Reason)
	assert.Contains(t, []string{LevelHigh, LevelMedium, LevelLow}, interest.Level)
}

func TestClientInterestNoMatch(t *testing.T) {
	r := newTestRater(t)

	interest := r.ClientInterest(&model.Article{Title: "今日天氣", Content: "晴時多雲偶陣雨。"}, time.Now())
	assert.Empty(t, interest.Categories)
	assert.Equal(t, clientReasonNone, interest.Reason)
	assert.Equal(t, LevelLow, interest.Level)
}

func TestTopTwoGroupsDeterministic(t *testing.T) {
	first, second := topTwoGroups(map[string]float64{"乙": 2.0, "甲": 2.0, "丙": 1.0})
	assert.Equal(t, "甲", first.name, "平手时按组名排序")
	assert.Equal(t, "乙", second.name)
}
