package e2e

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CoolPrid/roomify/internal/api"
	"github.com/CoolPrid/roomify/internal/api/handler"
	"github.com/CoolPrid/roomify/internal/api/middleware"
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
	"github.com/CoolPrid/roomify/internal/pkg/metrics"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo *echo.Echo
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

var (
	testServer *TestServer
	testDB     *sqlx.DB
)

// TestMain はE2Eテストのエントリポイント
// パッケージ全体で1回だけサーバーを起動することで高速化
func TestMain(m *testing.M) {
	cfg := config.Load()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		os.Exit(0) // DB未起動時はスキップ
	}
	testDB = db

	// マイグレーション実行
	if err := postgres.RunMigrations(db.DB, "../migrations"); err != nil {
		db.Close()
		os.Exit(0)
	}

	// Redis接続（任意: 未起動ならロック・キャッシュなしで続行）
	var lockManager *redisinfra.LockManager
	var quoteCache *redisinfra.QuoteCache
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err == nil {
		lockManager = redisinfra.NewLockManager(redisClient)
		quoteCache = redisinfra.NewQuoteCache(redisClient)
	}

	mtr := metrics.NewWithRegistry(prometheus.NewRegistry())

	// サービス初期化
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	rateTable := pricing.NewRateTable()
	pricingEngine := pricing.NewEngine(roomRepo, rateTable)
	discountEngine := discount.NewEngine()
	availabilityEngine := availability.NewEngine(bookingRepo, roomRepo)

	bookingService := application.NewBookingService(
		bookingRepo,
		availabilityEngine,
		pricingEngine,
		discountEngine,
		paymentinfra.NewAutoApproveGateway(),
		notificationinfra.NewLogSink(),
		invoice.NewGenerator(),
		lockManager,
		quoteCache,
		mtr,
	)
	roomService := application.NewRoomService(roomRepo)
	quoteService := application.NewQuoteService(pricingEngine, discountEngine, quoteCache)
	reportService := application.NewReportService(bookingRepo, roomRepo)

	bookingHandler := handler.NewBookingHandler(bookingService)
	roomHandler := handler.NewRoomHandler(roomService, quoteService, availabilityEngine)
	var quoteInvalidator handler.QuoteInvalidator
	if quoteCache != nil {
		quoteInvalidator = quoteCache
	}
	adminHandler := handler.NewAdminHandler(availabilityEngine, discountEngine, rateTable, quoteInvalidator)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

	e.GET("/health", healthHandler.Check)

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

	testServer = &TestServer{Echo: e}

	// テスト実行
	code := m.Run()

	// 最終クリーンアップ
	cleanupTables()
	if redisClient != nil {
		redisClient.Close()
	}
	db.Close()

	os.Exit(code)
}

// cleanupTables はテストデータをクリーンアップ
func cleanupTables() {
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM rooms WHERE id LIKE 'e2e-%'")
}

// getTestServer は共有サーバーを取得（テスト前にテーブルをクリーンアップ）
func getTestServer(t *testing.T) *TestServer {
	t.Helper()
	if testServer == nil {
		t.Skip("テスト環境が利用できません")
	}
	cleanupTables()
	return testServer
}
