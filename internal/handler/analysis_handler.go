// Package handler 定义了 HTTP 接口层。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ins-news-go/internal/model"
	"ins-news-go/internal/service"
	"ins-news-go/pkg/log"
)

// 相似检索与聚类是 CPU 密集操作，用固定 deadline 兜底。
const similarityTimeout = 10 * time.Second

// AnalysisHandler 结构体定义了分析相关的处理器。
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler 创建一个新的 AnalysisHandler 实例。
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// articleRequest 是分析接口的文章入参。
type articleRequest struct {
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (req *articleRequest) toArticle() *model.Article {
	return &model.Article{
		Title:       req.Title,
		Content:     req.Content,
		Summary:     req.Summary,
		Source:      req.Source,
		PublishedAt: req.PublishedAt,
	}
}

// textRequest 是纯文本分析接口的入参。
type textRequest struct {
	Text string `json:"text" binding:"required"`
	TopK int    `json:"topK"`
}

// AnalyzeArticle 对一篇文章做全量分析。
func (h *AnalysisHandler) AnalyzeArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	result, err := h.analysisService.AnalyzeArticle(c.Request.Context(), req.toArticle())
	if err != nil {
		log.Errorf("[AnalysisHandler] 文章分析失败, title: %s, error: %v", req.Title, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "分析失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// ExtractKeywords 抽取文本关键词。
func (h *AnalysisHandler) ExtractKeywords(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	keywords := h.analysisService.ExtractKeywords(req.Text, req.TopK)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": keywords, "message": "success"})
}

// AnalyzeSentiment 对文本做情感分析。
func (h *AnalysisHandler) AnalyzeSentiment(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	result := h.analysisService.AnalyzeSentiment(req.Text)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// ClassifyCategory 对文本做主题分类。
func (h *AnalysisHandler) ClassifyCategory(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	result := h.analysisService.ClassifyCategory(req.Text)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// summaryRequest 是摘要接口的入参。
type summaryRequest struct {
	Text      string `json:"text" binding:"required"`
	MaxLength int    `json:"maxLength"`
}

// Summarize 对文本做抽取式摘要。
func (h *AnalysisHandler) Summarize(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	if req.MaxLength <= 0 {
		req.MaxLength = 100
	}

	summary := h.analysisService.Summarize(req.Text, req.MaxLength)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"summary": summary}, "message": "success"})
}

// RateImportance 计算文章的多维度重要性评分。
func (h *AnalysisHandler) RateImportance(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	result := h.analysisService.RateImportance(req.toArticle())
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// FindSimilar 检索与指定文章相似的最近文章。
func (h *AnalysisHandler) FindSimilar(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文章 ID"})
		return
	}
	topK, err := strconv.Atoi(c.DefaultQuery("topK", "5"))
	if err != nil || topK <= 0 {
		topK = 5
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), similarityTimeout)
	defer cancel()

	matches, err := h.analysisService.FindSimilarArticles(ctx, uint(articleID), topK)
	if err != nil {
		log.Errorf("[AnalysisHandler] 相似检索失败, articleID: %d, error: %v", articleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "相似检索失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": matches, "message": "success"})
}

// ClusterArticles 对最近文章做主题聚类。
func (h *AnalysisHandler) ClusterArticles(c *gin.Context) {
	k, err := strconv.Atoi(c.DefaultQuery("k", "5"))
	if err != nil || k <= 0 {
		k = 5
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), similarityTimeout)
	defer cancel()

	result, err := h.analysisService.ClusterRecentArticles(ctx, k)
	if err != nil {
		log.Errorf("[AnalysisHandler] 聚类失败, k: %d, error: %v", k, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "聚类失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}
