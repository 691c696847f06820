// Package model 定义了与数据库表对应的 Go 结构体以及分析结果 DTO。
package model

import "time"

// Article 定义了 news_article 表的 ORM 模型。
// 文章由爬虫/采集端写入，引擎只读不改。
type Article struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(512);not null" json:"title"`
	Content     string     `gorm:"type:longtext" json:"content"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Source      string     `gorm:"type:varchar(128)" json:"source"`
	URL         string     `gorm:"type:varchar(1024)" json:"url"`
	URLMD5      string     `gorm:"type:varchar(32);uniqueIndex" json:"-"`
	PublishedAt *time.Time `gorm:"default:null" json:"publishedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Article) TableName() string {
	return "news_article"
}

// ArticleAnalysis 定义了 article_analysis 表的 ORM 模型。
// ResultJSON 保存完整的 AnalysisResult，其余列为列表/排序用的冗余字段。
type ArticleAnalysis struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID       uint      `gorm:"not null;uniqueIndex" json:"articleId"`
	ResultJSON      string    `gorm:"type:longtext;not null" json:"-"`
	ImportanceScore float64   `gorm:"not null;default:0" json:"importanceScore"`
	ImportanceLevel string    `gorm:"type:varchar(8)" json:"importanceLevel"`
	Category        string    `gorm:"type:varchar(32)" json:"category"`
	SentimentLabel  string    `gorm:"type:varchar(16)" json:"sentimentLabel"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ArticleAnalysis) TableName() string {
	return "article_analysis"
}
