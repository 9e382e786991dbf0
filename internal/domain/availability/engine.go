package availability

import (
	"context"
	"sync"
	"time"

	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/room"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

const (
	minStayNights = 1
	maxStayNights = 30

	maxAdvanceDays = 365

	// プレミアム客室は週末（土・日）チェックインで最低2泊
	weekendMinNightsPremium = 2
)

// Engine は客室の空室判定を行う
// メンテナンス中の客室集合とブロック日付は管理操作で変更されるため
// ロックで保護する。判定に失敗した場合は常に「空室でない」側に倒す
type Engine struct {
	bookings booking.Repository
	rooms    room.Repository

	mu          sync.RWMutex
	maintenance map[string]struct{}
	blocked     map[string]map[time.Time]struct{}

	now func() time.Time
}

// NewEngine は空室判定エンジンを作成する（roomsはnil可）
func NewEngine(bookings booking.Repository, rooms room.Repository) *Engine {
	return &Engine{
		bookings:    bookings,
		rooms:       rooms,
		maintenance: make(map[string]struct{}),
		blocked:     make(map[string]map[time.Time]struct{}),
		now:         time.Now,
	}
}

// IsAvailable は期間 [from, to) に客室を予約できるかを返す
// 判定は失敗した時点で打ち切る:
// 引数の妥当性 → メンテナンス → ブロック日付 → 既存予約との重なり → 業務ルール
func (e *Engine) IsAvailable(ctx context.Context, roomID string, from, to time.Time) bool {
	from, to = dateutil.Day(from), dateutil.Day(to)

	if !e.validRequest(roomID, from, to) {
		return false
	}
	if e.UnderMaintenance(roomID) {
		return false
	}
	if e.hasBlockedDates(roomID, from, to) {
		return false
	}
	if e.hasOverlappingBooking(ctx, roomID, from, to) {
		return false
	}
	return e.meetsBusinessRules(ctx, roomID, from, to)
}

// AvailableDates は期間 [from, to] の各日について1泊の空室を調べ、
// 予約可能な日付の一覧を返す
func (e *Engine) AvailableDates(ctx context.Context, roomID string, from, to time.Time) []time.Time {
	var dates []time.Time
	if roomID == "" || from.IsZero() || to.IsZero() {
		return dates
	}

	for d := dateutil.Day(from); !d.After(dateutil.Day(to)); d = d.AddDate(0, 0, 1) {
		if e.IsAvailable(ctx, roomID, d, d.AddDate(0, 0, 1)) {
			dates = append(dates, d)
		}
	}
	return dates
}

// CheckRooms は複数客室の空室を個別に判定する
func (e *Engine) CheckRooms(ctx context.Context, roomIDs []string, from, to time.Time) map[string]bool {
	result := make(map[string]bool, len(roomIDs))
	for _, roomID := range roomIDs {
		result[roomID] = e.IsAvailable(ctx, roomID, from, to)
	}
	return result
}

// UnderMaintenance は客室がメンテナンス中かを返す
func (e *Engine) UnderMaintenance(roomID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.maintenance[roomID]
	return ok
}

// AddMaintenanceRoom は客室をメンテナンス中にする
func (e *Engine) AddMaintenanceRoom(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maintenance[roomID] = struct{}{}
}

// RemoveMaintenanceRoom は客室のメンテナンスを解除する
func (e *Engine) RemoveMaintenanceRoom(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.maintenance, roomID)
}

// BlockDate は客室の特定日をブロックする
func (e *Engine) BlockDate(roomID string, date time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.blocked[roomID] == nil {
		e.blocked[roomID] = make(map[time.Time]struct{})
	}
	e.blocked[roomID][dateutil.Day(date)] = struct{}{}
}

// UnblockDate は客室の特定日のブロックを解除する
func (e *Engine) UnblockDate(roomID string, date time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dates, ok := e.blocked[roomID]; ok {
		delete(dates, dateutil.Day(date))
	}
}

func (e *Engine) validRequest(roomID string, from, to time.Time) bool {
	if roomID == "" || from.IsZero() || to.IsZero() {
		return false
	}
	if !from.Before(to) {
		return false
	}
	return !from.Before(dateutil.Day(e.now()))
}

func (e *Engine) hasBlockedDates(roomID string, from, to time.Time) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	dates, ok := e.blocked[roomID]
	if !ok || len(dates) == 0 {
		return false
	}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if _, blocked := dates[d]; blocked {
			return true
		}
	}
	return false
}

func (e *Engine) hasOverlappingBooking(ctx context.Context, roomID string, from, to time.Time) bool {
	existing, err := e.bookings.GetByRoomID(ctx, roomID)
	if err != nil {
		// 取得できない場合は空室と断定しない
		return true
	}
	for _, b := range existing {
		if b.Overlaps(from, to) {
			return true
		}
	}
	return false
}

func (e *Engine) meetsBusinessRules(ctx context.Context, roomID string, from, to time.Time) bool {
	nights := dateutil.Nights(from, to)
	daysInAdvance := dateutil.Nights(dateutil.Day(e.now()), from)

	if nights < minStayNights || nights > maxStayNights {
		return false
	}
	if daysInAdvance > maxAdvanceDays {
		return false
	}
	if isWeekendCheckIn(from) && e.roomCategory(ctx, roomID).IsPremium() && nights < weekendMinNightsPremium {
		return false
	}
	return true
}

func (e *Engine) roomCategory(ctx context.Context, roomID string) room.Category {
	if e.rooms != nil {
		if r, err := e.rooms.GetByID(ctx, roomID); err == nil {
			return r.Category
		}
	}
	return room.CategoryFromID(roomID)
}

func isWeekendCheckIn(checkIn time.Time) bool {
	wd := checkIn.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
