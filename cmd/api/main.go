package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// version 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

// @title           Bookshelf API
// @version         1.0
// @description     图书管理服务：图书增删改查与Open Library ISBN查询
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 命令行入口
//
//	bookshelf serve  [--config path]   启动HTTP服务
//	bookshelf lookup <isbn>            在命令行查询ISBN
//	bookshelf version
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "图书目录服务",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "启动HTTP服务",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "lookup <isbn>",
			Short: "通过Open Library查询ISBN",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				return lookup(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "打印版本号",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// serve 启动HTTP服务，收到SIGINT/SIGTERM后优雅关闭
func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 链路追踪(未启用时为no-op)
	shutdownTracer, err := tracing.InitTracer(tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		return fmt.Errorf("初始化链路追踪失败: %w", err)
	}

	// 2. 依赖注入(Wire生成)
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		_ = shutdownTracer(context.Background())
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	log := app.Logger
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("关闭链路追踪失败", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 3. 启动服务
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 4. 等待退出信号
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("收到退出信号，开始优雅关闭", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("优雅关闭失败: %w", err)
	}
	log.Info("服务已停止")
	return nil
}

// lookup 命令行ISBN查询，结果以JSON输出
func lookup(ctx context.Context, cfg *config.Config, isbn string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	uc, cleanup, err := InitializeLookup(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := uc.Execute(ctx, isbn)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
