// Package service 提供了新闻分析相关的业务逻辑。
package service

import (
	"context"
	"fmt"

	"ins-news-go/internal/analyzer"
	"ins-news-go/internal/model"
	"ins-news-go/internal/repository"
	"ins-news-go/pkg/log"
)

// AnalysisService 接口定义了对外暴露的分析操作。
type AnalysisService interface {
	AnalyzeArticle(ctx context.Context, article *model.Article) (model.AnalysisResult, error)
	ExtractKeywords(text string, topK int) []model.Keyword
	AnalyzeSentiment(text string) model.SentimentResult
	ClassifyCategory(text string) model.CategoryResult
	RateImportance(article *model.Article) model.ImportanceResult
	Summarize(text string, maxLength int) string
	FindSimilarArticles(ctx context.Context, articleID uint, topK int) ([]model.SimilarArticle, error)
	ClusterRecentArticles(ctx context.Context, k int) (model.ClusterResult, error)
}

type analysisService struct {
	engine         *analyzer.AnalysisEngine
	articleRepo    repository.ArticleRepository
	candidateLimit int
}

// NewAnalysisService 创建一个新的 AnalysisService 实例。
// candidateLimit 限制相似检索/聚类的候选语料规模（CPU 密集操作的上限）。
func NewAnalysisService(engine *analyzer.AnalysisEngine, articleRepo repository.ArticleRepository, candidateLimit int) AnalysisService {
	if candidateLimit <= 0 {
		candidateLimit = 100
	}
	return &analysisService{
		engine:         engine,
		articleRepo:    articleRepo,
		candidateLimit: candidateLimit,
	}
}

// AnalyzeArticle 对单篇文章做全量分析（结果经引擎缓存记忆化）。
func (s *analysisService) AnalyzeArticle(ctx context.Context, article *model.Article) (model.AnalysisResult, error) {
	return s.engine.AnalyzeArticle(article)
}

func (s *analysisService) ExtractKeywords(text string, topK int) []model.Keyword {
	return s.engine.ExtractKeywords(text, topK)
}

func (s *analysisService) AnalyzeSentiment(text string) model.SentimentResult {
	return s.engine.AnalyzeSentiment(text)
}

func (s *analysisService) ClassifyCategory(text string) model.CategoryResult {
	return s.engine.ClassifyCategory(text)
}

func (s *analysisService) RateImportance(article *model.Article) model.ImportanceResult {
	return s.engine.RateImportance(article)
}

func (s *analysisService) Summarize(text string, maxLength int) string {
	return s.engine.Summarize(text, maxLength)
}

// FindSimilarArticles 以指定文章为目标，在最近文章中检索相似文章。
// 引擎内部没有取消原语，超时控制只能由调用方 deadline 承担：
// ctx 到期时丢弃计算结果，返回空结果而不是一直阻塞。
func (s *analysisService) FindSimilarArticles(ctx context.Context, articleID uint, topK int) ([]model.SimilarArticle, error) {
	target, err := s.articleRepo.FindArticleByID(articleID)
	if err != nil {
		return nil, fmt.Errorf("查询目标文章失败: %w", err)
	}

	candidates, err := s.articleRepo.FindRecentArticles(s.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("查询候选文章失败: %w", err)
	}

	docs := make([]string, 0, len(candidates))
	ids := make([]uint, 0, len(candidates))
	titles := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == target.ID {
			continue
		}
		docs = append(docs, c.Title+" "+c.Content)
		ids = append(ids, c.ID)
		titles = append(titles, c.Title)
	}

	type simResult struct{ matches []model.SimilarArticle }
	done := make(chan simResult, 1)
	go func() {
		matches := s.engine.FindSimilarArticles(target.Title+" "+target.Content, docs, topK)
		done <- simResult{matches: matches}
	}()

	select {
	case <-ctx.Done():
		log.Warnf("[AnalysisService] 相似检索超时, articleID=%d, 返回空结果", articleID)
		return []model.SimilarArticle{}, nil
	case res := <-done:
		for i := range res.matches {
			res.matches[i].ArticleID = ids[res.matches[i].Index]
			res.matches[i].Title = titles[res.matches[i].Index]
		}
		return res.matches, nil
	}
}

// ClusterRecentArticles 对最近文章做主题聚类，超时语义与相似检索一致。
func (s *analysisService) ClusterRecentArticles(ctx context.Context, k int) (model.ClusterResult, error) {
	empty := model.ClusterResult{Clusters: map[int][]int{}, Centers: [][]string{}}

	candidates, err := s.articleRepo.FindRecentArticles(s.candidateLimit)
	if err != nil {
		return empty, fmt.Errorf("查询候选文章失败: %w", err)
	}
	if len(candidates) == 0 {
		return empty, nil
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Title + " " + c.Content
	}

	done := make(chan model.ClusterResult, 1)
	go func() {
		done <- s.engine.ClusterArticles(docs, k)
	}()

	select {
	case <-ctx.Done():
		log.Warnf("[AnalysisService] 聚类超时, k=%d, 返回空结果", k)
		return empty, nil
	case result := <-done:
		return result, nil
	}
}
