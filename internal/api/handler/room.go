package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CoolPrid/roomify/internal/application"
	"github.com/CoolPrid/roomify/internal/domain/room"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

// RoomHandler は客室関連のHTTPハンドラー
type RoomHandler struct {
	service      RoomServiceInterface
	quotes       QuoteServiceInterface
	availability AvailabilityInterface
}

// NewRoomHandler は新しいRoomHandlerを作成する
func NewRoomHandler(service RoomServiceInterface, quotes QuoteServiceInterface, availability AvailabilityInterface) *RoomHandler {
	return &RoomHandler{service: service, quotes: quotes, availability: availability}
}

// SaveRoomRequest は客室登録リクエスト
type SaveRoomRequest struct {
	ID        string  `json:"id" validate:"required"`
	Category  string  `json:"category"`
	Capacity  int     `json:"capacity" validate:"required,min=1"`
	BasePrice float64 `json:"base_price" validate:"required,gt=0"`
}

// RoomResponse は客室レスポンス
type RoomResponse struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Capacity  int     `json:"capacity"`
	BasePrice float64 `json:"base_price"`
}

// AvailableDatesResponse は空き日一覧レスポンス
type AvailableDatesResponse struct {
	RoomID string   `json:"room_id"`
	Dates  []string `json:"dates"`
}

// CheckRoomsRequest は複数客室の空室確認リクエスト
type CheckRoomsRequest struct {
	RoomIDs  []string `json:"room_ids" validate:"required,min=1"`
	CheckIn  string   `json:"check_in" validate:"required"`
	CheckOut string   `json:"check_out" validate:"required"`
}

func toRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Category:  string(r.Category),
		Capacity:  r.Capacity,
		BasePrice: r.BasePrice,
	}
}

// GetRoom は客室を取得する
// @Summary 客室取得
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id := c.Param("id")

	r, err := h.service.GetRoom(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "客室が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "客室の取得に失敗しました")
	}

	return c.JSON(http.StatusOK, toRoomResponse(r))
}

// ListRooms は客室一覧を取得する
// @Summary 客室一覧
// @Tags rooms
// @Produce json
// @Success 200 {array} RoomResponse
// @Router /api/v1/rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.service.ListRooms(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "客室一覧の取得に失敗しました")
	}

	resp := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}

// SaveRoom は客室を登録・更新する
// @Summary 客室登録
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body SaveRoomRequest true "客室登録リクエスト"
// @Success 201 {object} RoomResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rooms [post]
func (h *RoomHandler) SaveRoom(c echo.Context) error {
	var req SaveRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := room.Category(req.Category)
	if req.Category == "" {
		category = room.CategoryFromID(req.ID)
	}

	r, err := h.service.SaveRoom(c.Request().Context(), application.SaveRoomInput{
		ID:        req.ID,
		Category:  category,
		Capacity:  req.Capacity,
		BasePrice: req.BasePrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrInvalidCategory),
			errors.Is(err, room.ErrInvalidCapacity),
			errors.Is(err, room.ErrInvalidBasePrice),
			errors.Is(err, room.ErrRoomIDRequired):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "客室の登録に失敗しました")
		}
	}

	return c.JSON(http.StatusCreated, toRoomResponse(r))
}

// GetQuote は宿泊料金の見積もりを取得する
// @Summary 料金見積もり
// @Description 客室・期間・プロモコードから割引適用後の料金を見積もる
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Param check_in query string true "チェックイン日 (YYYY-MM-DD)"
// @Param check_out query string true "チェックアウト日 (YYYY-MM-DD)"
// @Param promo_code query string false "プロモコード"
// @Param X-User-ID header string false "ユーザーID"
// @Success 200 {object} application.Quote
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/quote [get]
func (h *RoomHandler) GetQuote(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Request().Header.Get("X-User-ID")

	checkIn, err := dateutil.Parse(c.QueryParam("check_in"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_inの日付形式が不正です")
	}
	checkOut, err := dateutil.Parse(c.QueryParam("check_out"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_outの日付形式が不正です")
	}
	if !checkIn.Before(checkOut) {
		return echo.NewHTTPError(http.StatusBadRequest, "チェックイン日はチェックアウト日より前である必要があります")
	}

	quote, err := h.quotes.GetQuote(c.Request().Context(), roomID, userID, c.QueryParam("promo_code"), checkIn, checkOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "見積もりの取得に失敗しました")
	}

	return c.JSON(http.StatusOK, quote)
}

// GetAvailability は指定期間の空室状態を取得する
// @Summary 空室確認
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Param check_in query string true "チェックイン日 (YYYY-MM-DD)"
// @Param check_out query string true "チェックアウト日 (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/availability [get]
func (h *RoomHandler) GetAvailability(c echo.Context) error {
	roomID := c.Param("id")

	checkIn, err := dateutil.Parse(c.QueryParam("check_in"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_inの日付形式が不正です")
	}
	checkOut, err := dateutil.Parse(c.QueryParam("check_out"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_outの日付形式が不正です")
	}

	available := h.availability.IsAvailable(c.Request().Context(), roomID, checkIn, checkOut)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"room_id":   roomID,
		"check_in":  dateutil.Format(checkIn),
		"check_out": dateutil.Format(checkOut),
		"available": available,
	})
}

// GetAvailableDates は指定期間内の空き日一覧を取得する
// @Summary 空き日一覧
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Param from query string true "開始日 (YYYY-MM-DD)"
// @Param to query string true "終了日 (YYYY-MM-DD)"
// @Success 200 {object} AvailableDatesResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rooms/{id}/available-dates [get]
func (h *RoomHandler) GetAvailableDates(c echo.Context) error {
	roomID := c.Param("id")

	from, err := dateutil.Parse(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fromの日付形式が不正です")
	}
	to, err := dateutil.Parse(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "toの日付形式が不正です")
	}

	dates := h.availability.AvailableDates(c.Request().Context(), roomID, from, to)
	resp := AvailableDatesResponse{RoomID: roomID, Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, dateutil.Format(d))
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckRooms は複数客室の空室状態をまとめて確認する
// @Summary 複数客室の空室確認
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body CheckRoomsRequest true "空室確認リクエスト"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/rooms/availability [post]
func (h *RoomHandler) CheckRooms(c echo.Context) error {
	var req CheckRoomsRequest
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

	result := h.availability.CheckRooms(c.Request().Context(), req.RoomIDs, checkIn, checkOut)
	return c.JSON(http.StatusOK, result)
}
