package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/domain/pricing"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
)

// AdminHandler は運用管理用のHTTPハンドラー
// quotes はnil許容で、未設定なら見積もりキャッシュの無効化をスキップする
type AdminHandler struct {
	availability AvailabilityInterface
	discounts    DiscountAdminInterface
	rates        *pricing.RateTable
	quotes       QuoteInvalidator
}

// NewAdminHandler は新しいAdminHandlerを作成する
func NewAdminHandler(availability AvailabilityInterface, discounts DiscountAdminInterface, rates *pricing.RateTable, quotes QuoteInvalidator) *AdminHandler {
	return &AdminHandler{availability: availability, discounts: discounts, rates: rates, quotes: quotes}
}

// invalidateQuotes は料金変更後に客室の見積もりキャッシュを無効化する
// roomIDが空のときは全客室を対象にする。失敗してもTTLで自然に消えるため
// ログに残すのみとする
func (h *AdminHandler) invalidateQuotes(c echo.Context, roomID string) {
	if h.quotes == nil {
		return
	}
	ctx := c.Request().Context()
	var err error
	if roomID == "" {
		err = h.quotes.InvalidateAll(ctx)
	} else {
		err = h.quotes.Invalidate(ctx, roomID)
	}
	if err != nil {
		logger.Warn("見積もりキャッシュ無効化に失敗", zap.String("room_id", roomID), zap.Error(err))
	}
}

// AddPromoCodeRequest はプロモコード登録リクエスト
type AddPromoCodeRequest struct {
	Code      string  `json:"code" validate:"required"`
	Fraction  float64 `json:"fraction" validate:"required,gt=0,lt=1"`
	ExpiresAt string  `json:"expires_at"`
}

// SetBaseRateRequest は基本料金設定リクエスト
type SetBaseRateRequest struct {
	RoomID string  `json:"room_id" validate:"required"`
	Rate   float64 `json:"rate" validate:"required,gt=0"`
}

// SetSeasonalMultiplierRequest は季節係数設定リクエスト
type SetSeasonalMultiplierRequest struct {
	Season     string  `json:"season" validate:"required"`
	Multiplier float64 `json:"multiplier" validate:"required,gt=0"`
}

// AddMaintenanceRoom は客室をメンテナンス対象に追加する
// @Summary メンテナンス対象追加
// @Tags admin
// @Param id path string true "客室ID"
// @Success 204
// @Router /api/v1/admin/maintenance/{id} [put]
func (h *AdminHandler) AddMaintenanceRoom(c echo.Context) error {
	h.availability.AddMaintenanceRoom(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// RemoveMaintenanceRoom は客室をメンテナンス対象から外す
// @Summary メンテナンス対象解除
// @Tags admin
// @Param id path string true "客室ID"
// @Success 204
// @Router /api/v1/admin/maintenance/{id} [delete]
func (h *AdminHandler) RemoveMaintenanceRoom(c echo.Context) error {
	h.availability.RemoveMaintenanceRoom(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// BlockDate は客室の特定日を予約不可にする
// @Summary 日付ブロック追加
// @Tags admin
// @Param id path string true "客室ID"
// @Param date path string true "ブロックする日付 (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rooms/{id}/blocked-dates/{date} [put]
func (h *AdminHandler) BlockDate(c echo.Context) error {
	date, err := dateutil.Parse(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日付形式が不正です")
	}
	h.availability.BlockDate(c.Param("id"), date)
	return c.NoContent(http.StatusNoContent)
}

// UnblockDate は客室の日付ブロックを解除する
// @Summary 日付ブロック解除
// @Tags admin
// @Param id path string true "客室ID"
// @Param date path string true "解除する日付 (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rooms/{id}/blocked-dates/{date} [delete]
func (h *AdminHandler) UnblockDate(c echo.Context) error {
	date, err := dateutil.Parse(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日付形式が不正です")
	}
	h.availability.UnblockDate(c.Param("id"), date)
	return c.NoContent(http.StatusNoContent)
}

// AddVIP はユーザーをVIPに登録する
// @Summary VIP登録
// @Tags admin
// @Param id path string true "ユーザーID"
// @Success 204
// @Router /api/v1/admin/vips/{id} [put]
func (h *AdminHandler) AddVIP(c echo.Context) error {
	h.discounts.AddVIP(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// RemoveVIP はユーザーのVIP登録を解除する
// @Summary VIP解除
// @Tags admin
// @Param id path string true "ユーザーID"
// @Success 204
// @Router /api/v1/admin/vips/{id} [delete]
func (h *AdminHandler) RemoveVIP(c echo.Context) error {
	h.discounts.RemoveVIP(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// AddPromoCode はプロモコードを登録する
// @Summary プロモコード登録
// @Tags admin
// @Accept json
// @Param request body AddPromoCodeRequest true "プロモコード登録リクエスト"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/promo-codes [post]
func (h *AdminHandler) AddPromoCode(c echo.Context) error {
	var req AddPromoCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "expires_atの日時形式が不正です")
		}
		expiresAt = &t
	}

	h.discounts.AddPromoCode(req.Code, req.Fraction, expiresAt)
	return c.NoContent(http.StatusNoContent)
}

// SetBaseRate は客室の基本料金を設定する
// @Summary 基本料金設定
// @Tags admin
// @Accept json
// @Param request body SetBaseRateRequest true "基本料金設定リクエスト"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rates/base [put]
func (h *AdminHandler) SetBaseRate(c echo.Context) error {
	var req SetBaseRateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.rates.SetBaseRate(req.RoomID, req.Rate)
	h.invalidateQuotes(c, req.RoomID)
	return c.NoContent(http.StatusNoContent)
}

// SetSeasonalMultiplier は季節係数を設定する
// @Summary 季節係数設定
// @Tags admin
// @Accept json
// @Param request body SetSeasonalMultiplierRequest true "季節係数設定リクエスト"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rates/seasonal [put]
func (h *AdminHandler) SetSeasonalMultiplier(c echo.Context) error {
	var req SetSeasonalMultiplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	season := pricing.Season(req.Season)
	if !season.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "季節の指定が不正です")
	}

	h.rates.SetSeasonalMultiplier(season, req.Multiplier)
	h.invalidateQuotes(c, "")
	return c.NoContent(http.StatusNoContent)
}

// AddHoliday は祝日を追加する
// @Summary 祝日追加
// @Tags admin
// @Param date path string true "祝日 (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/holidays/{date} [put]
func (h *AdminHandler) AddHoliday(c echo.Context) error {
	date, err := dateutil.Parse(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日付形式が不正です")
	}
	h.rates.AddHoliday(date)
	h.invalidateQuotes(c, "")
	return c.NoContent(http.StatusNoContent)
}

// RemoveHoliday は祝日を削除する
// @Summary 祝日削除
// @Tags admin
// @Param date path string true "祝日 (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/holidays/{date} [delete]
func (h *AdminHandler) RemoveHoliday(c echo.Context) error {
	date, err := dateutil.Parse(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日付形式が不正です")
	}
	h.rates.RemoveHoliday(date)
	h.invalidateQuotes(c, "")
	return c.NoContent(http.StatusNoContent)
}
