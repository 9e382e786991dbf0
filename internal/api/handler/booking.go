package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CoolPrid/roomify/internal/application"
	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/payment"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

// BookingHandler は予約関連のHTTPハンドラー
type BookingHandler struct {
	service BookingServiceInterface
}

// NewBookingHandler は新しいBookingHandlerを作成する
func NewBookingHandler(service BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBookingRequest は予約作成リクエスト
type CreateBookingRequest struct {
	RoomID    string `json:"room_id" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required"`
	CheckOut  string `json:"check_out" validate:"required"`
	PromoCode string `json:"promo_code"`
}

// BookingResponse は予約レスポンス
type BookingResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Nights    int       `json:"nights"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// CancelBookingResponse はキャンセルレスポンス
type CancelBookingResponse struct {
	ID     string  `json:"id"`
	Refund float64 `json:"refund"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		CheckIn:   dateutil.Format(b.CheckIn),
		CheckOut:  dateutil.Format(b.CheckOut),
		Nights:    b.Nights(),
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
	}
}

// CreateBooking は予約を作成する
// @Summary 予約作成
// @Description 指定した客室・期間で予約を作成する
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreateBookingRequest true "予約作成リクエスト"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "X-User-IDヘッダーが必要です")
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, err := dateutil.Parse(req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_inの日付形式が不正です")
	}
	checkOut, err := dateutil.Parse(req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_outの日付形式が不正です")
	}

	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		RoomID:    req.RoomID,
		UserID:    userID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		PromoCode: req.PromoCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrRoomNotAvailable):
			return echo.NewHTTPError(http.StatusConflict, "指定された期間は予約できません")
		case errors.Is(err, payment.ErrPaymentFailed):
			return echo.NewHTTPError(http.StatusPaymentRequired, "決済に失敗しました")
		case errors.Is(err, booking.ErrRoomIDRequired),
			errors.Is(err, booking.ErrUserIDRequired),
			errors.Is(err, booking.ErrInvalidDateRange),
			errors.Is(err, booking.ErrNegativePrice):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "予約の作成に失敗しました")
		}
	}

	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetBooking は予約を取得する
// @Summary 予約取得
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id := c.Param("id")

	b, err := h.service.GetBooking(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "予約が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "予約の取得に失敗しました")
	}

	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetUserBookings はユーザーの予約一覧を取得する
// @Summary ユーザー予約一覧
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param limit query int false "取得件数"
// @Param offset query int false "オフセット"
// @Success 200 {array} BookingResponse
// @Router /api/v1/bookings [get]
func (h *BookingHandler) GetUserBookings(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "X-User-IDヘッダーが必要です")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	bookings, err := h.service.GetUserBookings(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "予約一覧の取得に失敗しました")
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	return c.JSON(http.StatusOK, resp)
}

// CancelBooking は予約をキャンセルする
// @Summary 予約キャンセル
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} CancelBookingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id := c.Param("id")

	refund, err := h.service.CancelBooking(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "予約が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "予約のキャンセルに失敗しました")
	}

	return c.JSON(http.StatusOK, CancelBookingResponse{ID: id, Refund: refund})
}
