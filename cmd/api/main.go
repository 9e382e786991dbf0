package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/api"
	"github.com/CoolPrid/roomify/internal/api/handler"
	custommiddleware "github.com/CoolPrid/roomify/internal/api/middleware"
	"github.com/CoolPrid/roomify/internal/application"
	"github.com/CoolPrid/roomify/internal/config"
	"github.com/CoolPrid/roomify/internal/domain/availability"
	"github.com/CoolPrid/roomify/internal/domain/discount"
	"github.com/CoolPrid/roomify/internal/domain/pricing"
	notificationinfra "github.com/CoolPrid/roomify/internal/infrastructure/notification"
	paymentinfra "github.com/CoolPrid/roomify/internal/infrastructure/payment"
	"github.com/CoolPrid/roomify/internal/infrastructure/postgres"
	redisinfra "github.com/CoolPrid/roomify/internal/infrastructure/redis"
	"github.com/CoolPrid/roomify/internal/pkg/invoice"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
	"github.com/CoolPrid/roomify/internal/pkg/metrics"
	"github.com/CoolPrid/roomify/internal/worker"
)

func main() {
	// 設定読み込み
	cfg := config.Load()

	// ロガー初期化
	log := logger.NewLogger(cfg.Server.Env)
	logger.Set(log)
	defer logger.Sync()

	log.Info("アプリケーションを起動します", zap.String("env", cfg.Server.Env))

	// メトリクス初期化
	m := metrics.Init()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	if err := postgres.RunMigrations(db.DB, "migrations"); err != nil {
		log.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続（任意: 失敗してもロック・キャッシュなしで続行する）
	var lockManager *redisinfra.LockManager
	var quoteCache *redisinfra.QuoteCache
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis接続に失敗しました。ロックとキャッシュなしで続行します", zap.Error(err))
	} else {
		defer redisClient.Close()
		lockManager = redisinfra.NewLockManager(redisClient)
		quoteCache = redisinfra.NewQuoteCache(redisClient)
	}

	// リポジトリ
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// ドメインエンジン
	rateTable := pricing.NewRateTable()
	pricingEngine := pricing.NewEngine(roomRepo, rateTable)
	discountEngine := discount.NewEngine()
	availabilityEngine := availability.NewEngine(bookingRepo, roomRepo)

	// インフラサービス
	paymentGateway := paymentinfra.NewAutoApproveGateway()
	notifier := notificationinfra.NewLogSink()
	invoices := invoice.NewGenerator()

	// アプリケーションサービス
	bookingService := application.NewBookingService(
		bookingRepo,
		availabilityEngine,
		pricingEngine,
		discountEngine,
		paymentGateway,
		notifier,
		invoices,
		lockManager,
		quoteCache,
		m,
	)
	roomService := application.NewRoomService(roomRepo)
	quoteService := application.NewQuoteService(pricingEngine, discountEngine, quoteCache)
	reportService := application.NewReportService(bookingRepo, roomRepo)

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	bookingHandler := handler.NewBookingHandler(bookingService)
	roomHandler := handler.NewRoomHandler(roomService, quoteService, availabilityEngine)
	var quoteInvalidator handler.QuoteInvalidator
	if quoteCache != nil {
		quoteInvalidator = quoteCache
	}
	adminHandler := handler.NewAdminHandler(availabilityEngine, discountEngine, rateTable, quoteInvalidator)
	reportHandler := handler.NewReportHandler(reportService)

	// Echo設定
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	// ルーティング
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	v1.POST("/bookings", bookingHandler.CreateBooking)
	v1.GET("/bookings", bookingHandler.GetUserBookings)
	v1.GET("/bookings/:id", bookingHandler.GetBooking)
	v1.DELETE("/bookings/:id", bookingHandler.CancelBooking)

	v1.GET("/rooms", roomHandler.ListRooms)
	v1.POST("/rooms", roomHandler.SaveRoom)
	v1.POST("/rooms/availability", roomHandler.CheckRooms)
	v1.GET("/rooms/:id", roomHandler.GetRoom)
	v1.GET("/rooms/:id/quote", roomHandler.GetQuote)
	v1.GET("/rooms/:id/availability", roomHandler.GetAvailability)
	v1.GET("/rooms/:id/available-dates", roomHandler.GetAvailableDates)

	v1.GET("/reports/monthly", reportHandler.GetMonthlyMetrics)

	admin := v1.Group("/admin")
	admin.PUT("/maintenance/:id", adminHandler.AddMaintenanceRoom)
	admin.DELETE("/maintenance/:id", adminHandler.RemoveMaintenanceRoom)
	admin.PUT("/rooms/:id/blocked-dates/:date", adminHandler.BlockDate)
	admin.DELETE("/rooms/:id/blocked-dates/:date", adminHandler.UnblockDate)
	admin.PUT("/vips/:id", adminHandler.AddVIP)
	admin.DELETE("/vips/:id", adminHandler.RemoveVIP)
	admin.POST("/promo-codes", adminHandler.AddPromoCode)
	admin.PUT("/rates/base", adminHandler.SetBaseRate)
	admin.PUT("/rates/seasonal", adminHandler.SetSeasonalMultiplier)
	admin.PUT("/holidays/:date", adminHandler.AddHoliday)
	admin.DELETE("/holidays/:date", adminHandler.RemoveHoliday)

	// 期限切れプロモコードの掃除ワーカー起動
	sweeper := worker.NewExpiredPromoSweeper(discountEngine, cfg.Worker.PromoSweepInterval)
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()
	go sweeper.Start(sweeperCtx)

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("サーバーをシャットダウンしています...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	log.Info("サーバーが正常にシャットダウンしました")
}
