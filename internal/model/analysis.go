package model

import "time"

// Keyword 是一个带权重的关键词。
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// SentimentResult 是词典法情感分析的结果。
// score 落在 [-1,1]，confidence 落在 [0,1]。
type SentimentResult struct {
	Label      string  `json:"label"` // positive / negative / neutral
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// CategoryResult 是主题分类结果，Scores 保留每个类别的得分。
type CategoryResult struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

// ImportanceDimensions 是重要性评分的五个维度，均落在 [0,1]。
type ImportanceDimensions struct {
	Regulatory float64 `json:"regulatory"`
	Business   float64 `json:"business"`
	Timeliness float64 `json:"timeliness"`
	Client     float64 `json:"client"`
	Trend      float64 `json:"trend"`
}

// ImportanceResult 是多维度重要性评分的聚合结果。
type ImportanceResult struct {
	FinalScore float64              `json:"finalScore"`
	Level      string               `json:"level"` // 高 / 中 / 低
	Dimensions ImportanceDimensions `json:"dimensions"`
}

// BusinessImpact 描述新闻对哪个业务面影响最大，以及建议的应对动作。
type BusinessImpact struct {
	Type          string  `json:"type"`
	SecondaryType string  `json:"secondaryType,omitempty"`
	Score         float64 `json:"score"`
	Level         string  `json:"level"`
	Urgency       string  `json:"urgency"`
	Action        string  `json:"action"`
}

// ClientInterest 估计新闻对保户的相关程度。
type ClientInterest struct {
	Level      string   `json:"level"`
	Score      float64  `json:"score"`
	Reason     string   `json:"reason"`
	Categories []string `json:"categories"`
}

// TextStats 是正文的基础统计。
type TextStats struct {
	WordCount          int `json:"wordCount"`
	ReadingTimeMinutes int `json:"readingTimeMinutes"`
}

// AnalysisResult 是引擎对单篇文章的聚合分析结果。
// 每次调用新建一份，返回后归调用方所有；缓存按内容哈希保留副本。
type AnalysisResult struct {
	Keywords       []Keyword       `json:"keywords"`
	Sentiment      SentimentResult `json:"sentiment"`
	Category       CategoryResult  `json:"category"`
	Importance     ImportanceResult `json:"importance"`
	BusinessImpact BusinessImpact  `json:"businessImpact"`
	ClientInterest ClientInterest  `json:"clientInterest"`
	TextStats      TextStats       `json:"textStats"`
	AnalyzedAt     time.Time       `json:"analyzedAt"`
}

// SimilarArticle 是相似文章检索的单条结果，Index 指向候选集合中的下标。
type SimilarArticle struct {
	Index      int     `json:"index"`
	ArticleID  uint    `json:"articleId,omitempty"`
	Title      string  `json:"title,omitempty"`
	Similarity float64 `json:"similarity"`
}

// ClusterResult 是 k-means 聚类的结果。
type ClusterResult struct {
	Clusters map[int][]int `json:"clusters"` // 簇 ID -> 文章下标
	Centers  [][]string    `json:"centers"`  // 每个簇质心的 top 词
}
