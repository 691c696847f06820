package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"ins-news-go/internal/analyzer"
	"ins-news-go/internal/config"
	"ins-news-go/pkg/log"
	"ins-news-go/pkg/token"
)

// AdminHandler 结构体定义了管理接口：登录与缓存维护操作。
type AdminHandler struct {
	cache      *analyzer.AnalysisCache
	jwtManager *token.JWTManager
	adminCfg   config.AdminConfig
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(cache *analyzer.AnalysisCache, jwtManager *token.JWTManager, adminCfg config.AdminConfig) *AdminHandler {
	return &AdminHandler{cache: cache, jwtManager: jwtManager, adminCfg: adminCfg}
}

// loginRequest 是管理员登录入参。
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验配置中的管理员账号（密码为 bcrypt 哈希），签发 ADMIN token。
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	if req.Username != h.adminCfg.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.adminCfg.PasswordHash), []byte(req.Password)) != nil {
		log.Warnf("[AdminHandler] 管理员登录失败, username: %s", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "账号或密码错误"})
		return
	}

	accessToken, err := h.jwtManager.GenerateToken(req.Username, "ADMIN")
	if err != nil {
		log.Errorf("[AdminHandler] 生成 token 失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"accessToken": accessToken}, "message": "success"})
}

// CacheStats 返回两级缓存的命中统计与磁盘占用。
func (h *AdminHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": h.cache.GetStats(), "message": "success"})
}

// ClearCacheCategory 清空指定类别下两级缓存的全部条目。
func (h *AdminHandler) ClearCacheCategory(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少缓存类别"})
		return
	}

	if err := h.cache.ClearCategory(category); err != nil {
		log.Errorf("[AdminHandler] 清理缓存类别失败, category: %s, error: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清理失败"})
		return
	}

	log.Infof("[AdminHandler] 缓存类别已清空, category: %s", category)
	c.JSON(http.StatusOK, gin.H{"code": 200, "message": "success"})
}

// ClearExpiredCache 扫描并删除两级缓存中所有过期条目。
func (h *AdminHandler) ClearExpiredCache(c *gin.Context) {
	removed := h.cache.ClearExpired()
	log.Infof("[AdminHandler] 过期缓存清理完成, 删除 %d 条", removed)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"removed": removed}, "message": "success"})
}
