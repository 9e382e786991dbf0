package handler

import (
	"context"
	"time"

	"github.com/CoolPrid/roomify/internal/application"
	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/room"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error)
	CancelBooking(ctx context.Context, id string) (float64, error)
}

// RoomServiceInterface は客室サービスのインターフェース
type RoomServiceInterface interface {
	GetRoom(ctx context.Context, id string) (*room.Room, error)
	SaveRoom(ctx context.Context, input application.SaveRoomInput) (*room.Room, error)
	ListRooms(ctx context.Context) ([]*room.Room, error)
}

// QuoteServiceInterface は見積もりサービスのインターフェース
type QuoteServiceInterface interface {
	GetQuote(ctx context.Context, roomID, userID, promoCode string, checkIn, checkOut time.Time) (*application.Quote, error)
}

// AvailabilityInterface は空室判定エンジンのインターフェース
type AvailabilityInterface interface {
	IsAvailable(ctx context.Context, roomID string, from, to time.Time) bool
	AvailableDates(ctx context.Context, roomID string, from, to time.Time) []time.Time
	CheckRooms(ctx context.Context, roomIDs []string, from, to time.Time) map[string]bool
	AddMaintenanceRoom(roomID string)
	RemoveMaintenanceRoom(roomID string)
	BlockDate(roomID string, date time.Time)
	UnblockDate(roomID string, date time.Time)
}

// DiscountAdminInterface は割引エンジンの管理操作のインターフェース
type DiscountAdminInterface interface {
	AddVIP(userID string)
	RemoveVIP(userID string)
	AddPromoCode(code string, fraction float64, expiresAt *time.Time)
}

// QuoteInvalidator は見積もりキャッシュの無効化操作のインターフェース
type QuoteInvalidator interface {
	Invalidate(ctx context.Context, roomID string) error
	InvalidateAll(ctx context.Context) error
}

// ReportServiceInterface は集計サービスのインターフェース
type ReportServiceInterface interface {
	GetMonthlyMetrics(ctx context.Context, month, year int) (*application.MonthlyMetrics, error)
}
