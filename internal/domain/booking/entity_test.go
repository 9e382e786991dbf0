package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBooking(t *testing.T) {
	checkIn := time.Date(2025, 4, 14, 15, 30, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 17, 11, 0, 0, 0, time.UTC)

	b := NewBooking("room-1", "user-1", checkIn, checkOut, 280.0)

	assert.Equal(t, "room-1", b.RoomID)
	assert.Equal(t, "user-1", b.UserID)
	// 時刻は日付に正規化される
	assert.Equal(t, date(2025, 4, 14), b.CheckIn)
	assert.Equal(t, date(2025, 4, 17), b.CheckOut)
	assert.Equal(t, 280.0, b.Price)
	assert.Empty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestBooking_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{"1泊", date(2025, 4, 14), date(2025, 4, 15), 1},
		{"3泊", date(2025, 4, 14), date(2025, 4, 17), 3},
		{"月またぎ", date(2025, 4, 29), date(2025, 5, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBooking("room-1", "user-1", tt.checkIn, tt.checkOut, 100)
			assert.Equal(t, tt.expected, b.Nights())
		})
	}
}

func TestDatesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		start1   time.Time
		end1     time.Time
		start2   time.Time
		end2     time.Time
		expected bool
	}{
		{
			"完全に重なる",
			date(2025, 4, 14), date(2025, 4, 17),
			date(2025, 4, 14), date(2025, 4, 17),
			true,
		},
		{
			"部分的に重なる",
			date(2025, 4, 14), date(2025, 4, 17),
			date(2025, 4, 16), date(2025, 4, 19),
			true,
		},
		{
			"一方が他方を含む",
			date(2025, 4, 14), date(2025, 4, 20),
			date(2025, 4, 16), date(2025, 4, 18),
			true,
		},
		{
			"チェックアウト日とチェックイン日が同じなら重ならない",
			date(2025, 4, 14), date(2025, 4, 17),
			date(2025, 4, 17), date(2025, 4, 19),
			false,
		},
		{
			"完全に離れている",
			date(2025, 4, 14), date(2025, 4, 16),
			date(2025, 4, 20), date(2025, 4, 22),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DatesOverlap(tt.start1, tt.end1, tt.start2, tt.end2))
			// 重なり判定は対称
			assert.Equal(t, tt.expected, DatesOverlap(tt.start2, tt.end2, tt.start1, tt.end1))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	b := NewBooking("room-1", "user-1", date(2025, 4, 14), date(2025, 4, 17), 280)

	assert.True(t, b.Overlaps(date(2025, 4, 16), date(2025, 4, 18)))
	assert.False(t, b.Overlaps(date(2025, 4, 17), date(2025, 4, 19)))
	assert.False(t, b.Overlaps(date(2025, 4, 12), date(2025, 4, 14)))
}

func TestBooking_Validate(t *testing.T) {
	valid := func() *Booking {
		return NewBooking("room-1", "user-1", date(2025, 4, 14), date(2025, 4, 17), 280)
	}

	t.Run("有効な予約", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name     string
		modify   func(b *Booking)
		expected error
	}{
		{"客室IDなし", func(b *Booking) { b.RoomID = "" }, ErrRoomIDRequired},
		{"ユーザーIDなし", func(b *Booking) { b.UserID = "" }, ErrUserIDRequired},
		{"チェックインとチェックアウトが同日", func(b *Booking) { b.CheckOut = b.CheckIn }, ErrInvalidDateRange},
		{"日付が逆転", func(b *Booking) { b.CheckIn, b.CheckOut = b.CheckOut, b.CheckIn }, ErrInvalidDateRange},
		{"負の価格", func(b *Booking) { b.Price = -1 }, ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.modify(b)
			assert.ErrorIs(t, b.Validate(), tt.expected)
		})
	}
}
