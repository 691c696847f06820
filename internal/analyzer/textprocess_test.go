package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "保費 調漲", CleanText("  保費 \n\t 調漲  "))
	assert.Equal(t, "金管會 公布 裁罰", CleanText("<p>金管會</p><b>公布</b>裁罰"))
	// 全角 ASCII 转半角
	assert.Equal(t, "IFRS17 (2026)", CleanText("ＩＦＲＳ１７　（２０２６）"))
}

func TestSegmentFiltersNoise(t *testing.T) {
	p := newTestProcessor(t)

	tokens := p.Segment("金管會今天公布了保險業的裁罰案，理賠糾紛！！")
	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		assert.Greater(t, len([]rune(tok)), 1, "不应出现单字词: %q", tok)
		assert.False(t, isPurePunct(tok), "不应出现纯标点词: %q", tok)
		_, stop := chineseStopwords[tok]
		assert.False(t, stop, "不应出现停用词: %q", tok)
	}

	assert.Nil(t, p.Segment(""))
	assert.Empty(t, p.Segment("！！？？。。"))
}

func TestExtractKeywords(t *testing.T) {
	p := newTestProcessor(t)
	text := strings.Repeat("金管會公布保險業裁罰案，壽險公司準備金不足遭罰款。", 3) +
		"理賠申訴案件增加，保戶權益受到關注。"

	keywords := p.ExtractKeywords(text, 5)
	require.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), 5)
	for i := 1; i < len(keywords); i++ {
		assert.GreaterOrEqual(t, keywords[i-1].Weight, keywords[i].Weight, "关键词应按权重降序")
	}
	for _, kw := range keywords {
		assert.NotEmpty(t, kw.Term)
		assert.Greater(t, kw.Weight, 0.0)
	}

	assert.Empty(t, p.ExtractKeywords("", 5))
	assert.Empty(t, p.ExtractKeywords(text, 0))
}

func TestFindKeywords(t *testing.T) {
	p := newTestProcessor(t)
	text := "金管會要求壽險公司增提準備金，保費收入持續成長。"

	counts := p.FindKeywords(text, []string{"金管會", "準備金", "保費", "區塊鏈"}, false)
	assert.Equal(t, 1, counts["金管會"])
	assert.Equal(t, 1, counts["準備金"])
	assert.Equal(t, 1, counts["保費"])
	_, ok := counts["區塊鏈"]
	assert.False(t, ok, "未命中的词不应出现在结果里")
}

func TestFindKeywordsSynonyms(t *testing.T) {
	p := newTestProcessor(t)
	// 原词不出现，只出现同义词「金融監督管理委員會」
	text := "金融監督管理委員會今日公布最新函令。金融監督管理委員會強調保戶權益。"

	without := p.FindKeywords(text, []string{"金管會"}, false)
	_, ok := without["金管會"]
	assert.False(t, ok)

	with := p.FindKeywords(text, []string{"金管會"}, true)
	assert.Equal(t, 2, with["金管會"], "同义词命中应以 max 取代原词计数")
}

func TestCategorizeText(t *testing.T) {
	p := newTestProcessor(t)
	categories := map[string][]string{
		"高重要性": {"金管會", "裁罰", "法規"},
		"市場趨勢": {"利率", "通膨"},
	}

	scores := p.CategorizeText("金管會依法規對壽險公司開出裁罰。", categories)
	require.Len(t, scores, 2)
	assert.Greater(t, scores["高重要性"], 0.0)
	assert.Equal(t, 0.0, scores["市場趨勢"], "无命中的类别得 0 分")
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}

	// 命中再多也不应超过 1.0
	spam := strings.Repeat("金管會裁罰法規", 50)
	scores = p.CategorizeText(spam, categories)
	assert.Equal(t, 1.0, scores["高重要性"])
}

func TestSummarize(t *testing.T) {
	p := newTestProcessor(t)

	short := "保費調漲。"
	assert.Equal(t, short, p.Summarize(short, 100), "短文本应原样返回")

	long := "金管會公布新規。壽險公司須增提準備金。保戶權益不受影響。市場反應平穩。"
	summary := p.Summarize(long, 18)
	assert.True(t, strings.HasSuffix(summary, "…"), "被截断的摘要应以省略号结尾")
	assert.LessOrEqual(t, len([]rune(summary)), 19)
	assert.True(t, strings.HasPrefix(summary, "金管會公布新規。"))

	assert.Equal(t, "", p.Summarize("", 100))
	assert.Equal(t, "", p.Summarize(long, 0))
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("第一句。第二句！第三句？尾巴")
	require.Len(t, sentences, 4)
	assert.Equal(t, "第一句。", sentences[0])
	assert.Equal(t, "第二句！", sentences[1])
	assert.Equal(t, "第三句？", sentences[2])
	assert.Equal(t, "尾巴", sentences[3])
}
