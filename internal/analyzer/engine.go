package analyzer

import (
	"time"
	"unicode/utf8"

	"ins-news-go/internal/model"
	"ins-news-go/pkg/log"
)

const (
	// 聚合分析结果所在的缓存类别。
	cacheCategoryAnalysis = "analysis"

	// 默认关键词数与分类兜底标签。
	defaultTopK     = 10
	unknownCategory = "未分類"

	// 中文阅读速度估算：每分钟字数。
	readingCharsPerMinute = 400
)

// AnalysisEngine 编排各分析组件，对单篇文章产出聚合结果。
// 进程启动时显式构建一次，所有调用方共享同一实例；
// 除 AnalysisCache 外没有任何跨调用的可变状态。
type AnalysisEngine struct {
	processor  *TextProcessor
	sentiment  *SentimentAnalyzer
	rater      *ImportanceRater
	similarity *SimilarityEngine
	cache      *AnalysisCache
	table      KeywordWeightTable
}

// NewAnalysisEngine 组装分析引擎。词表与分词器在此之后只读共享。
func NewAnalysisEngine(tokenizer Tokenizer, table KeywordWeightTable, cache *AnalysisCache) *AnalysisEngine {
	processor := NewTextProcessor(tokenizer)
	return &AnalysisEngine{
		processor:  processor,
		sentiment:  NewSentimentAnalyzer(processor),
		rater:      NewImportanceRater(table, processor),
		similarity: NewSimilarityEngine(processor),
		cache:      cache,
		table:      table,
	}
}

// AnalyzeArticle 是唯一带缓存的顶层操作：对文章做全量分析，
// 结果按 (analysis, 内容哈希) 记忆化。任何内部异常都在此边界
// 兜底为中性结果，不向调用方抛出。
func (e *AnalysisEngine) AnalyzeArticle(article *model.Article) (result model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[engine] 文章分析发生内部错误, title=%q: %v", article.Title, r)
			result = e.neutralResult(article)
			err = nil
		}
	}()

	key := ArticleCacheKey(article)
	return CacheOrCompute(e.cache, cacheCategoryAnalysis, key, func() (model.AnalysisResult, error) {
		return e.analyze(article), nil
	})
}

// analyze 执行真正的全量分析，不经过缓存。
func (e *AnalysisEngine) analyze(article *model.Article) model.AnalysisResult {
	now := time.Now()
	fullText := article.Title + " " + article.Content

	return model.AnalysisResult{
		Keywords:       e.ExtractKeywords(fullText, defaultTopK),
		Sentiment:      e.AnalyzeSentiment(fullText),
		Category:       e.ClassifyCategory(fullText),
		Importance:     e.rater.Rate(article, now),
		BusinessImpact: e.rater.BusinessImpact(article, now),
		ClientInterest: e.rater.ClientInterest(article, now),
		TextStats:      e.textStats(article),
		AnalyzedAt:     now,
	}
}

// neutralResult 是错误兜底：中性情感、未知分类、零重要性。
func (e *AnalysisEngine) neutralResult(article *model.Article) model.AnalysisResult {
	return model.AnalysisResult{
		Keywords:  []model.Keyword{},
		Sentiment: model.SentimentResult{Label: SentimentNeutral},
		Category:  model.CategoryResult{Label: unknownCategory, Scores: map[string]float64{}},
		Importance: model.ImportanceResult{
			FinalScore: 0,
			Level:      LevelLow,
		},
		BusinessImpact: model.BusinessImpact{
			Type: "一般業務", Level: LevelLow, Urgency: "可作參考",
			Action: impactActions["一般業務"],
		},
		ClientInterest: model.ClientInterest{Level: LevelLow, Reason: clientReasonNone},
		TextStats:      e.textStats(article),
		AnalyzedAt:     time.Now(),
	}
}

// ExtractKeywords 抽取带权重的关键词，供报表与趋势功能单独调用。
func (e *AnalysisEngine) ExtractKeywords(text string, topK int) []model.Keyword {
	if topK <= 0 {
		topK = defaultTopK
	}
	return e.processor.ExtractKeywords(text, topK)
}

// AnalyzeSentiment 对一段文本做词典法情感分析。
func (e *AnalysisEngine) AnalyzeSentiment(text string) model.SentimentResult {
	return e.sentiment.Analyze(text)
}

// ClassifyCategory 按词表给文本做主题分类，全零时落到未知分类。
func (e *AnalysisEngine) ClassifyCategory(text string) model.CategoryResult {
	scores := e.processor.CategorizeText(text, e.table.CategoryKeywords())

	label := unknownCategory
	best := 0.0
	for category, score := range scores {
		if score > best || (score == best && score > 0 && category < label) {
			best = score
			label = category
		}
	}
	if best == 0 {
		label = unknownCategory
	}
	return model.CategoryResult{Label: label, Confidence: best, Scores: scores}
}

// RateImportance 计算五维度重要性评分。
func (e *AnalysisEngine) RateImportance(article *model.Article) model.ImportanceResult {
	return e.rater.Rate(article, time.Now())
}

// RateBusinessImpact 推导业务影响分类子报告。
func (e *AnalysisEngine) RateBusinessImpact(article *model.Article) model.BusinessImpact {
	return e.rater.BusinessImpact(article, time.Now())
}

// RateClientInterest 推导保户兴趣子报告。
func (e *AnalysisEngine) RateClientInterest(article *model.Article) model.ClientInterest {
	return e.rater.ClientInterest(article, time.Now())
}

// FindSimilarArticles 在候选文本中检索与目标最相似的若干篇。
// CPU 密集：调用方负责限制候选规模并自带超时。
func (e *AnalysisEngine) FindSimilarArticles(target string, candidates []string, topK int) []model.SimilarArticle {
	return e.similarity.FindSimilar(target, candidates, topK)
}

// ClusterArticles 对候选文本做 k-means 主题聚类。
func (e *AnalysisEngine) ClusterArticles(docs []string, k int) model.ClusterResult {
	return e.similarity.Cluster(docs, k)
}

// Summarize 对正文做抽取式摘要。
func (e *AnalysisEngine) Summarize(text string, maxLength int) string {
	return e.processor.Summarize(text, maxLength)
}

// Cache 暴露缓存实例，供管理接口做统计与维护。
func (e *AnalysisEngine) Cache() *AnalysisCache {
	return e.cache
}

// textStats 统计正文字数并估算阅读时间（向上取整，至少 1 分钟）。
func (e *AnalysisEngine) textStats(article *model.Article) model.TextStats {
	wordCount := utf8.RuneCountInString(article.Content)
	minutes := (wordCount + readingCharsPerMinute - 1) / readingCharsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return model.TextStats{WordCount: wordCount, ReadingTimeMinutes: minutes}
}
