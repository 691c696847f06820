package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ins-news-go/internal/repository"
	"ins-news-go/pkg/log"
)

// ArticleHandler 结构体定义了文章查询相关的处理器。
type ArticleHandler struct {
	articleRepo repository.ArticleRepository
}

// NewArticleHandler 创建一个新的 ArticleHandler 实例。
func NewArticleHandler(articleRepo repository.ArticleRepository) *ArticleHandler {
	return &ArticleHandler{articleRepo: articleRepo}
}

// ListRecent 返回最近入库的文章列表。
func (h *ArticleHandler) ListRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	articles, err := h.articleRepo.FindRecentArticles(limit)
	if err != nil {
		log.Errorf("[ArticleHandler] 查询最近文章失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": articles, "message": "success"})
}

// ListTopImportance 返回按重要性排序的分析结果，供每日重点清单使用。
func (h *ArticleHandler) ListTopImportance(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	records, err := h.articleRepo.FindTopByImportance(limit)
	if err != nil {
		log.Errorf("[ArticleHandler] 查询重点文章失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": records, "message": "success"})
}

// GetAnalysis 返回指定文章已持久化的分析结果。
func (h *ArticleHandler) GetAnalysis(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文章 ID"})
		return
	}

	record, err := h.articleRepo.FindAnalysisByArticleID(uint(articleID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "分析结果不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": record, "message": "success"})
}
