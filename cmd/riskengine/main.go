// Package main 监管风险引擎服务启动入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	capitalapp "github.com/wyfcoding/bankingrisk/internal/capital/application"
	capitalhttp "github.com/wyfcoding/bankingrisk/internal/capital/interfaces/http"
	counterpartyapp "github.com/wyfcoding/bankingrisk/internal/counterparty/application"
	counterpartymysql "github.com/wyfcoding/bankingrisk/internal/counterparty/infrastructure/persistence/mysql"
	counterpartyhttp "github.com/wyfcoding/bankingrisk/internal/counterparty/interfaces/http"
	creditapp "github.com/wyfcoding/bankingrisk/internal/creditrisk/application"
	creditmessaging "github.com/wyfcoding/bankingrisk/internal/creditrisk/infrastructure/messaging"
	creditmysql "github.com/wyfcoding/bankingrisk/internal/creditrisk/infrastructure/persistence/mysql"
	credithttp "github.com/wyfcoding/bankingrisk/internal/creditrisk/interfaces/http"
	liquidityapp "github.com/wyfcoding/bankingrisk/internal/liquidity/application"
	liquiditymysql "github.com/wyfcoding/bankingrisk/internal/liquidity/infrastructure/persistence/mysql"
	liquidityhttp "github.com/wyfcoding/bankingrisk/internal/liquidity/interfaces/http"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	reportingapp "github.com/wyfcoding/bankingrisk/internal/reporting/application"
	"github.com/wyfcoding/bankingrisk/internal/reporting/domain"
	reportingmessaging "github.com/wyfcoding/bankingrisk/internal/reporting/infrastructure/messaging"
	reportingmysql "github.com/wyfcoding/bankingrisk/internal/reporting/infrastructure/persistence/mysql"
	"github.com/wyfcoding/bankingrisk/internal/reporting/interfaces/consumer"
	reportinghttp "github.com/wyfcoding/bankingrisk/internal/reporting/interfaces/http"
	"github.com/wyfcoding/pkg/logging"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/riskengine/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	viper.SetDefault("server.http_port", 8086)
	viper.SetDefault("log.level", "info")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			panic(fmt.Sprintf("read config failed: %v", err))
		}
	}

	// 2. Logger
	logger := logging.NewLogger("riskengine", "main", viper.GetString("log.level"))
	slog.SetDefault(logger.Logger)

	// 3. Database
	dsn := viper.GetString("database.source")
	db, err := gorm.Open(gorm_mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}

	// Auto Migrate
	if err := db.AutoMigrate(
		&creditmysql.RWAResultModel{},
		&creditmessaging.OutboxMessage{},
		&counterpartymysql.TradeExposureModel{},
		&counterpartymysql.NettingSetModel{},
		&liquiditymysql.LiquidityResultModel{},
		&domain.RegulatoryReport{},
		&reportingmessaging.OutboxMessage{},
	); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	// 4. Configuration value object（按值传入各计算器，运行期不再修改）
	riskCfg := loadRiskConfig()

	// 5. Repositories & Publishers
	rwaRepo := creditmysql.NewRWAResultRepository(db)
	ccrRepo := counterpartymysql.NewExposureRepository(db)
	liqRepo := liquiditymysql.NewResultRepository(db)
	reportRepo := reportingmysql.NewReportRepository(db)
	creditPublisher := creditmessaging.NewOutboxEventPublisher(db)
	reportPublisher := reportingmessaging.NewOutboxEventPublisher(db)

	// 6. Application
	creditService := creditapp.NewCreditRiskService(riskCfg, rwaRepo, creditPublisher, logger.Logger)
	counterpartyService := counterpartyapp.NewCounterpartyService(riskCfg, ccrRepo, logger.Logger)
	capitalService := capitalapp.NewCapitalService(riskCfg, logger.Logger)
	liquidityService := liquidityapp.NewLiquidityService(liqRepo, logger.Logger)
	reportService := reportingapp.NewReportService(
		creditService, counterpartyService, capitalService, liquidityService,
		reportRepo, reportPublisher, logger.Logger,
	)

	// 7. Interfaces
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api/v1")
	credithttp.NewCreditRiskHandler(creditService).RegisterRoutes(api)
	counterpartyhttp.NewCounterpartyHandler(counterpartyService).RegisterRoutes(api)
	capitalhttp.NewCapitalHandler(capitalService).RegisterRoutes(api)
	liquidityhttp.NewLiquidityHandler(liquidityService).RegisterRoutes(api)
	reportinghttp.NewReportHandler(reportService).RegisterRoutes(api)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", viper.GetInt("server.http_port")),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// 8. Start
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Kafka Consumer：消费生成器的组合批次
	if broker := viper.GetString("kafka.broker"); broker != "" {
		handler := consumer.NewPortfolioHandler(reportService, logger.Logger)
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{broker},
			GroupID: "riskengine-group",
			Topic:   consumer.PortfolioGeneratedTopic,
		})
		g.Go(func() error {
			defer reader.Close()
			for {
				msg, err := reader.FetchMessage(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				if err := handler.Handle(ctx, msg); err != nil {
					// 单条消息失败不拖垮消费循环
					slog.Error("portfolio message handling failed", "error", err)
				}
				if err := reader.CommitMessages(ctx, msg); err != nil {
					slog.Error("commit offset failed", "error", err)
				}
			}
		})
	}

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// loadRiskConfig 从配置文件覆盖监管默认参数
func loadRiskConfig() portfolio.RiskConfig {
	cfg := portfolio.DefaultRiskConfig()
	if v := viper.GetFloat64("buffers.conservation"); v > 0 {
		cfg.Buffers.ConservationBuffer = v
	}
	if v := viper.GetFloat64("buffers.countercyclical"); v > 0 {
		cfg.Buffers.CountercyclicalBuffer = v
	}
	if v := viper.GetFloat64("buffers.systemic"); v > 0 {
		cfg.Buffers.SystemicBuffer = v
	}
	if v := viper.GetFloat64("leverage.minimum"); v > 0 {
		cfg.LeverageMinimum = v
	}
	for class, weight := range viper.GetStringMap("risk_weights") {
		if w, ok := weight.(float64); ok {
			cfg.BaseRiskWeights[portfolio.ExposureClass(class)] = w
		}
	}
	return cfg
}
