package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CoolPrid/roomify/internal/application"
)

// ReportHandler は集計レポート関連のHTTPハンドラー
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler は新しいReportHandlerを作成する
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetMonthlyMetrics は月次の予約指標を取得する
// @Summary 月次レポート
// @Tags reports
// @Produce json
// @Param month query int true "月 (1-12)"
// @Param year query int true "年"
// @Success 200 {object} application.MonthlyMetrics
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/reports/monthly [get]
func (h *ReportHandler) GetMonthlyMetrics(c echo.Context) error {
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "monthの指定が不正です")
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "yearの指定が不正です")
	}

	metrics, err := h.service.GetMonthlyMetrics(c.Request().Context(), month, year)
	if err != nil {
		if errors.Is(err, application.ErrInvalidReportPeriod) {
			return echo.NewHTTPError(http.StatusBadRequest, "集計期間の指定が不正です")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "レポートの取得に失敗しました")
	}

	return c.JSON(http.StatusOK, metrics)
}
