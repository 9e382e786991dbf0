package application

import (
	"context"
	"fmt"
	"time"

	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/room"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

// ReportService は売上・稼働率の集計を行う
// 文字列レポートの整形は呼び出し側の責務で、ここでは数値のみ扱う
type ReportService struct {
	bookings booking.Repository
	rooms    room.Repository
}

// NewReportService は集計サービスを作成する
func NewReportService(bookings booking.Repository, rooms room.Repository) *ReportService {
	return &ReportService{bookings: bookings, rooms: rooms}
}

// MonthlyMetrics は月次の集計結果
type MonthlyMetrics struct {
	Month               int
	Year                int
	TotalRevenue        float64
	AverageBookingValue float64
	TotalBookings       int
	UniqueCustomers     int
	TotalRoomNights     int
	BookedRoomNights    int
	OccupancyRate       float64
}

// GetMonthlyMetrics は指定月の売上・稼働率を集計する
// 月をまたぐ予約は対象月に含まれる泊数だけを稼働に計上する
func (s *ReportService) GetMonthlyMetrics(ctx context.Context, month, year int) (*MonthlyMetrics, error) {
	if month < 1 || month > 12 || year < 2000 || year > 3000 {
		return nil, ErrInvalidReportPeriod
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	daysInMonth := dateutil.Nights(monthStart, monthEnd)

	monthly, err := s.bookings.GetOverlapping(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("予約の集計取得に失敗: %w", err)
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("客室一覧の取得に失敗: %w", err)
	}

	m := &MonthlyMetrics{
		Month:           month,
		Year:            year,
		TotalBookings:   len(monthly),
		TotalRoomNights: len(rooms) * daysInMonth,
	}

	customers := make(map[string]struct{})
	for _, b := range monthly {
		m.TotalRevenue += b.Price
		m.BookedRoomNights += nightsWithin(b, monthStart, monthEnd)
		customers[b.UserID] = struct{}{}
	}
	m.UniqueCustomers = len(customers)

	if m.TotalBookings > 0 {
		m.AverageBookingValue = m.TotalRevenue / float64(m.TotalBookings)
	}
	if m.TotalRoomNights > 0 {
		m.OccupancyRate = float64(m.BookedRoomNights) / float64(m.TotalRoomNights)
	}

	return m, nil
}

// nightsWithin は予約の泊数のうち [from, to) に含まれる分を返す
func nightsWithin(b *booking.Booking, from, to time.Time) int {
	start, end := b.CheckIn, b.CheckOut
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if n := dateutil.Nights(start, end); n > 0 {
		return n
	}
	return 0
}
