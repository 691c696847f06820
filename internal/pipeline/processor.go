// Package pipeline 定义了文章入库与分析的核心流程。
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ins-news-go/internal/analyzer"
	"ins-news-go/internal/config"
	"ins-news-go/internal/model"
	"ins-news-go/internal/repository"
	"ins-news-go/pkg/es"
	"ins-news-go/pkg/log"
	"ins-news-go/pkg/storage"
	"ins-news-go/pkg/tasks"
)

// Processor 封装了文章任务处理的所有依赖和逻辑：
// 去重入库、原始内容归档、全量分析、结果持久化与 ES 索引。
type Processor struct {
	engine      *analyzer.AnalysisEngine
	articleRepo repository.ArticleRepository
	esCfg       config.ElasticsearchConfig
	minioCfg    config.MinIOConfig
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(
	engine *analyzer.AnalysisEngine,
	articleRepo repository.ArticleRepository,
	esCfg config.ElasticsearchConfig,
	minioCfg config.MinIOConfig,
) *Processor {
	return &Processor{
		engine:      engine,
		articleRepo: articleRepo,
		esCfg:       esCfg,
		minioCfg:    minioCfg,
	}
}

// Process 是文章任务处理的主函数。
func (p *Processor) Process(ctx context.Context, task tasks.ArticleTask) error {
	log.Infof("[Processor] 开始处理文章任务, URLMD5: %s, Title: %s", task.URLMD5, task.Title)

	if task.Title == "" {
		log.Warnf("[Processor] 文章标题为空, 任务丢弃, URLMD5: %s", task.URLMD5)
		return errors.New("文章标题为空")
	}

	// 1. 按 URL 哈希去重；已存在的文章直接复用记录，重新分析（幂等）
	article, err := p.articleRepo.FindArticleByURLMD5(task.URLMD5)
	if err != nil {
		return fmt.Errorf("查询文章去重记录失败: %w", err)
	}
	if article == nil {
		article = &model.Article{
			Title:       task.Title,
			Content:     task.Content,
			Summary:     task.Summary,
			Source:      task.Source,
			URL:         task.URL,
			URLMD5:      task.URLMD5,
			PublishedAt: parsePublishedAt(task.PublishedAt),
		}
		if err := p.articleRepo.CreateArticle(article); err != nil {
			return fmt.Errorf("写入文章记录失败: %w", err)
		}
		log.Infof("[Processor] 步骤1: 文章入库成功, ID: %d", article.ID)
	} else {
		log.Infof("[Processor] 步骤1: 文章已存在, 复用记录, ID: %d", article.ID)
	}

	// 2. 归档原始内容到 MinIO（失败不中断主流程）
	if task.RawHTML != "" {
		if err := storage.ArchiveRawArticle(ctx, p.minioCfg.BucketName, task.URLMD5, []byte(task.RawHTML)); err != nil {
			log.Warnf("[Processor] 步骤2: 原始内容归档失败, URLMD5: %s: %v", task.URLMD5, err)
		} else {
			log.Infof("[Processor] 步骤2: 原始内容归档成功, URLMD5: %s", task.URLMD5)
		}
	}

	// 3. 全量分析
	result, err := p.engine.AnalyzeArticle(article)
	if err != nil {
		return fmt.Errorf("文章分析失败: %w", err)
	}
	log.Infof("[Processor] 步骤3: 分析完成, 重要性: %.2f (%s), 分类: %s",
		result.Importance.FinalScore, result.Importance.Level, result.Category.Label)

	// 4. 持久化分析结果
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化分析结果失败: %w", err)
	}
	record := &model.ArticleAnalysis{
		ArticleID:       article.ID,
		ResultJSON:      string(resultJSON),
		ImportanceScore: result.Importance.FinalScore,
		ImportanceLevel: result.Importance.Level,
		Category:        result.Category.Label,
		SentimentLabel:  result.Sentiment.Label,
	}
	if err := p.articleRepo.SaveAnalysis(record); err != nil {
		return fmt.Errorf("写入分析结果失败: %w", err)
	}
	log.Infof("[Processor] 步骤4: 分析结果已持久化, ArticleID: %d", article.ID)

	// 5. 索引到 Elasticsearch 供检索与清单使用
	keywords := make([]string, 0, len(result.Keywords))
	for _, kw := range result.Keywords {
		keywords = append(keywords, kw.Term)
	}
	doc := model.NewsDocument{
		ArticleID:       article.ID,
		Title:           article.Title,
		Summary:         article.Summary,
		Source:          article.Source,
		Keywords:        keywords,
		Category:        result.Category.Label,
		ImportanceScore: result.Importance.FinalScore,
		ImportanceLevel: result.Importance.Level,
		SentimentLabel:  result.Sentiment.Label,
		PublishedAt:     article.PublishedAt,
	}
	if err := es.IndexNewsDocument(ctx, p.esCfg.IndexName, doc); err != nil {
		return fmt.Errorf("索引新闻文档失败: %w", err)
	}
	log.Infof("[Processor] 步骤5: ES 索引完成, ArticleID: %d", article.ID)

	return nil
}

// parsePublishedAt 解析任务里的发布时间，格式非法时按缺失处理。
func parsePublishedAt(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Warnf("[Processor] 发布时间格式非法: %q, 按缺失处理", value)
		return nil
	}
	return &t
}
