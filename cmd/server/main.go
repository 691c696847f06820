// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ins-news-go/internal/analyzer"
	"ins-news-go/internal/config"
	"ins-news-go/internal/handler"
	"ins-news-go/internal/middleware"
	"ins-news-go/internal/pipeline"
	"ins-news-go/internal/repository"
	"ins-news-go/internal/service"
	"ins-news-go/pkg/database"
	"ins-news-go/pkg/es"
	"ins-news-go/pkg/kafka"
	"ins-news-go/pkg/log"
	"ins-news-go/pkg/storage"
	"ins-news-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis 和外部依赖
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化分析引擎：分词器 + 关键词权重表 + 两级缓存
	tokenizer, err := analyzer.NewTokenizer()
	if err != nil {
		log.Fatalf("分词器初始化失败: %v", err)
	}
	keywordTable := analyzer.LoadKeywordTable(cfg.Analyzer.KeywordsPath)
	cache := analyzer.NewAnalysisCache(
		cfg.Analyzer.CacheDir,
		cfg.Analyzer.CacheCapacity,
		time.Duration(cfg.Analyzer.CacheTTLMinutes)*time.Minute,
	)
	engine := analyzer.NewAnalysisEngine(tokenizer, keywordTable, cache)

	// 5. 初始化 Repository 和 Service (依赖注入)
	articleRepo := repository.NewArticleRepository(database.DB)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours)
	analysisService := service.NewAnalysisService(engine, articleRepo, cfg.Analyzer.CandidateLimit)

	// 6. 初始化文章处理管道 (Processor)
	processor := pipeline.NewProcessor(
		engine,
		articleRepo,
		cfg.Elasticsearch,
		cfg.MinIO,
	)

	// 7. 启动后台 Kafka 消费者
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Analysis 路由组（无状态分析接口）
		analysis := apiV1.Group("/analysis")
		{
			analysisHandler := handler.NewAnalysisHandler(analysisService)
			analysis.POST("/article", analysisHandler.AnalyzeArticle)
			analysis.POST("/keywords", analysisHandler.ExtractKeywords)
			analysis.POST("/sentiment", analysisHandler.AnalyzeSentiment)
			analysis.POST("/category", analysisHandler.ClassifyCategory)
			analysis.POST("/importance", analysisHandler.RateImportance)
			analysis.POST("/summary", analysisHandler.Summarize)
			analysis.GET("/similar/:id", analysisHandler.FindSimilar)
			analysis.GET("/clusters", analysisHandler.ClusterArticles)
		}

		// Article 路由组（已入库文章及其分析结果）
		articles := apiV1.Group("/articles")
		{
			articleHandler := handler.NewArticleHandler(articleRepo)
			articles.GET("/recent", articleHandler.ListRecent)
			articles.GET("/top", articleHandler.ListTopImportance)
			articles.GET("/:id/analysis", articleHandler.GetAnalysis)
		}

		// Admin 路由组：登录开放，缓存维护需要管理员 token
		adminHandler := handler.NewAdminHandler(cache, jwtManager, cfg.Admin)
		apiV1.POST("/admin/login", adminHandler.Login)

		admin := apiV1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(jwtManager))
		{
			admin.GET("/cache/stats", adminHandler.CacheStats)
			admin.DELETE("/cache/:category", adminHandler.ClearCacheCategory)
			admin.POST("/cache/clear-expired", adminHandler.ClearExpiredCache)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
