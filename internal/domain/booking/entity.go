package booking

import (
	"time"

	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

// Booking は確定済みの予約エンティティを表す
// IDは永続化時にリポジトリが採番する
type Booking struct {
	ID        string
	RoomID    string
	UserID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking は新しい予約を作成する
// 宿泊期間は半開区間 [CheckIn, CheckOut) として扱う
func NewBooking(roomID, userID string, checkIn, checkOut time.Time, price float64) *Booking {
	now := time.Now()
	return &Booking{
		RoomID:    roomID,
		UserID:    userID,
		CheckIn:   dateutil.Day(checkIn),
		CheckOut:  dateutil.Day(checkOut),
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Nights は泊数を返す
func (b *Booking) Nights() int {
	return dateutil.Nights(b.CheckIn, b.CheckOut)
}

// Overlaps は指定期間と宿泊期間が重なるかを返す
func (b *Booking) Overlaps(from, to time.Time) bool {
	return DatesOverlap(from, to, b.CheckIn, b.CheckOut)
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.RoomID == "" {
		return ErrRoomIDRequired
	}
	if b.UserID == "" {
		return ErrUserIDRequired
	}
	if !b.CheckIn.Before(b.CheckOut) {
		return ErrInvalidDateRange
	}
	if b.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// DatesOverlap は2つの半開区間 [start1, end1) と [start2, end2) が重なるかを返す
// 端点の一致（end1 == start2）は重なりとみなさない
func DatesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
