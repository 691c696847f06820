package model

import "time"

// NewsDocument 对应 Elasticsearch 新闻索引中的文档结构。
// 只索引列表与检索需要的字段，完整分析结果仍在 MySQL。
type NewsDocument struct {
	ArticleID       uint       `json:"article_id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Source          string     `json:"source"`
	Keywords        []string   `json:"keywords"`
	Category        string     `json:"category"`
	ImportanceScore float64    `json:"importance_score"`
	ImportanceLevel string     `json:"importance_level"`
	SentimentLabel  string     `json:"sentiment_label"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}
