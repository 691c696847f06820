// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"errors"

	"gorm.io/gorm"

	"ins-news-go/internal/model"
)

// ArticleRepository 接口定义了文章与分析结果的数据持久化操作。
type ArticleRepository interface {
	// Article operations
	CreateArticle(article *model.Article) error
	FindArticleByID(id uint) (*model.Article, error)
	FindArticleByURLMD5(urlMD5 string) (*model.Article, error)
	FindRecentArticles(limit int) ([]model.Article, error)

	// Analysis operations
	SaveAnalysis(record *model.ArticleAnalysis) error
	FindAnalysisByArticleID(articleID uint) (*model.ArticleAnalysis, error)
	FindTopByImportance(limit int) ([]model.ArticleAnalysis, error)
}

// articleRepository 是 ArticleRepository 接口的 GORM 实现。
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建一个新的 ArticleRepository 实例。
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// CreateArticle 在数据库中创建一条新的文章记录。
func (r *articleRepository) CreateArticle(article *model.Article) error {
	return r.db.Create(article).Error
}

// FindArticleByID 按主键检索文章。
func (r *articleRepository) FindArticleByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindArticleByURLMD5 按 URL 哈希检索文章，用于入库去重；未找到返回 (nil, nil)。
func (r *articleRepository) FindArticleByURLMD5(urlMD5 string) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("url_md5 = ?", urlMD5).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindRecentArticles 按发布时间倒序取最近的文章，作为相似检索/聚类的候选集。
func (r *articleRepository) FindRecentArticles(limit int) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Order("published_at DESC, id DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

// SaveAnalysis 写入或更新文章的分析结果（按 article_id 幂等）。
func (r *articleRepository) SaveAnalysis(record *model.ArticleAnalysis) error {
	var existing model.ArticleAnalysis
	err := r.db.Where("article_id = ?", record.ArticleID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(record).Error
	}
	if err != nil {
		return err
	}
	record.ID = existing.ID
	return r.db.Save(record).Error
}

// FindAnalysisByArticleID 按文章 ID 检索分析结果。
func (r *articleRepository) FindAnalysisByArticleID(articleID uint) (*model.ArticleAnalysis, error) {
	var record model.ArticleAnalysis
	err := r.db.Where("article_id = ?", articleID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindTopByImportance 按重要性分数倒序取分析结果，供每日重点清单使用。
func (r *articleRepository) FindTopByImportance(limit int) ([]model.ArticleAnalysis, error) {
	var records []model.ArticleAnalysis
	err := r.db.Order("importance_score DESC").Limit(limit).Find(&records).Error
	return records, err
}
