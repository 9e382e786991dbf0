package pricing

import (
	"sync"
	"time"

	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

// Season は料金シーズンを表す
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// Valid はシーズンが定義済みの値かを返す
func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn:
		return true
	}
	return false
}

// SeasonOf は日付の属するシーズンを返す（12〜2月:冬、3〜5月:春、6〜8月:夏、9〜11月:秋）
func SeasonOf(date time.Time) Season {
	switch date.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// DefaultBaseRate はカタログにもレート表にもない客室の基本料金
const DefaultBaseRate = 100.0

// RateTable は基本料金・シーズン係数・祝日の設定を保持する
// 管理操作で変更されるため、読み書きはすべてロックで保護する
type RateTable struct {
	mu        sync.RWMutex
	baseRates map[string]float64
	seasonal  map[Season]float64
	holidays  map[time.Time]struct{}
}

// NewRateTable は既定値入りのレート表を作成する
func NewRateTable() *RateTable {
	t := &RateTable{
		baseRates: map[string]float64{
			"economy-room":  80.0,
			"standard-room": 120.0,
			"deluxe-room":   180.0,
			"suite-room":    300.0,
			"premium-suite": 450.0,
			"penthouse":     800.0,
		},
		seasonal: map[Season]float64{
			SeasonWinter: 0.8,
			SeasonSpring: 1.0,
			SeasonSummer: 1.4,
			SeasonAutumn: 1.1,
		},
		holidays: make(map[time.Time]struct{}),
	}
	for _, d := range []time.Time{
		dateutil.Day(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		dateutil.Day(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)),
		dateutil.Day(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)),
		dateutil.Day(time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)),
		dateutil.Day(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)),
		dateutil.Day(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
	} {
		t.holidays[d] = struct{}{}
	}
	return t
}

// BaseRate は客室IDの基本料金を返す（未登録ならDefaultBaseRate）
func (t *RateTable) BaseRate(roomID string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if rate, ok := t.baseRates[roomID]; ok {
		return rate
	}
	return DefaultBaseRate
}

// SetBaseRate は客室IDの基本料金を設定する
func (t *RateTable) SetBaseRate(roomID string, rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.baseRates[roomID] = rate
}

// SeasonalMultiplier は日付のシーズン係数を返す（未設定なら1.0）
func (t *RateTable) SeasonalMultiplier(date time.Time) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if m, ok := t.seasonal[SeasonOf(date)]; ok {
		return m
	}
	return 1.0
}

// SetSeasonalMultiplier はシーズン係数を設定する
func (t *RateTable) SetSeasonalMultiplier(season Season, multiplier float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seasonal[season] = multiplier
}

// IsHoliday は日付が祝日かを返す
func (t *RateTable) IsHoliday(date time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.holidays[dateutil.Day(date)]
	return ok
}

// AddHoliday は祝日を追加する
func (t *RateTable) AddHoliday(date time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.holidays[dateutil.Day(date)] = struct{}{}
}

// RemoveHoliday は祝日を削除する
func (t *RateTable) RemoveHoliday(date time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.holidays, dateutil.Day(date))
}
