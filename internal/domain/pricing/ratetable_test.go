package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.November, SeasonAutumn},
		{time.December, SeasonWinter},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			d := time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.expected, SeasonOf(d))
		})
	}
}

func TestSeason_Valid(t *testing.T) {
	assert.True(t, SeasonWinter.Valid())
	assert.True(t, SeasonAutumn.Valid())
	assert.False(t, Season("monsoon").Valid())
}

func TestRateTable_BaseRate(t *testing.T) {
	table := NewRateTable()

	t.Run("登録済みの客室", func(t *testing.T) {
		assert.Equal(t, 120.0, table.BaseRate("standard-room"))
		assert.Equal(t, 450.0, table.BaseRate("premium-suite"))
	})

	t.Run("未登録の客室は既定値", func(t *testing.T) {
		assert.Equal(t, DefaultBaseRate, table.BaseRate("room-42"))
	})

	t.Run("設定の上書き", func(t *testing.T) {
		table.SetBaseRate("standard-room", 150.0)
		assert.Equal(t, 150.0, table.BaseRate("standard-room"))
	})
}

func TestRateTable_SeasonalMultiplier(t *testing.T) {
	table := NewRateTable()

	assert.Equal(t, 0.8, table.SeasonalMultiplier(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1.0, table.SeasonalMultiplier(time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1.4, table.SeasonalMultiplier(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1.1, table.SeasonalMultiplier(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))

	table.SetSeasonalMultiplier(SeasonSummer, 1.6)
	assert.Equal(t, 1.6, table.SeasonalMultiplier(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestRateTable_Holidays(t *testing.T) {
	table := NewRateTable()

	t.Run("既定の祝日", func(t *testing.T) {
		assert.True(t, table.IsHoliday(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, table.IsHoliday(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))
		assert.False(t, table.IsHoliday(time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("時刻付きでも判定できる", func(t *testing.T) {
		assert.True(t, table.IsHoliday(time.Date(2025, 7, 4, 18, 30, 0, 0, time.UTC)))
	})

	t.Run("追加と削除", func(t *testing.T) {
		d := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
		table.AddHoliday(d)
		assert.True(t, table.IsHoliday(d))
		table.RemoveHoliday(d)
		assert.False(t, table.IsHoliday(d))
	})
}
