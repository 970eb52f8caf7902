package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/logger"
	"github.com/xiebiao/bookshelf/internal/infrastructure/openlibrary"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Engine *gin.Engine
}

func newApp(cfg *config.Config, log *zap.Logger, engine *gin.Engine) *App {
	return &App{Config: cfg, Logger: log, Engine: engine}
}

// provideLogger 创建zap日志并替换全局Logger
// cleanup中刷新缓冲
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(log)
	return log, func() {
		_ = log.Sync()
		restore()
	}, nil
}

// provideLookupClient 从配置中取出lookup部分创建Open Library客户端
func provideLookupClient(cfg *config.Config, log *zap.Logger) (*openlibrary.Client, error) {
	return openlibrary.NewClient(cfg.Lookup, log)
}
