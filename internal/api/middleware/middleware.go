package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware はAPI共通のミドルウェアを登録する
// 順序はリクエストID → アクセスログ → リカバリー → CORS
func SetupMiddleware(e *echo.Echo) {
	// ログ相関用のリクエストID
	e.Use(middleware.RequestID())

	// zapによる構造化アクセスログ
	e.Use(RequestLogger())

	// ハンドラー内のパニックを500レスポンスに変換する
	e.Use(middleware.Recover())

	// ブラウザクライアントはX-User-IDヘッダー付きで予約APIを呼ぶ
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-User-ID"},
	}))
}
