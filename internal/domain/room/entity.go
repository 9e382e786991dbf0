package room

import (
	"strings"
	"time"
)

// Category は客室のカテゴリを表す
type Category string

const (
	CategoryEconomy   Category = "economy"
	CategoryStandard  Category = "standard"
	CategoryDeluxe    Category = "deluxe"
	CategorySuite     Category = "suite"
	CategoryPremium   Category = "premium"
	CategoryPenthouse Category = "penthouse"
)

// IsPremium はプレミアム扱い（需要係数・週末最低泊数ルールの対象）かを返す
func (c Category) IsPremium() bool {
	return c == CategorySuite || c == CategoryPremium
}

// Valid はカテゴリが定義済みかを返す
func (c Category) Valid() bool {
	switch c {
	case CategoryEconomy, CategoryStandard, CategoryDeluxe,
		CategorySuite, CategoryPremium, CategoryPenthouse:
		return true
	}
	return false
}

// CategoryFromID は客室IDからカテゴリを推定する
// カタログ未登録の客室のためのフォールバック。旧来の文字列一致
// （"suite"/"premium" を含むか）と同じ判定表を保つ
func CategoryFromID(roomID string) Category {
	id := strings.ToLower(roomID)
	switch {
	case strings.Contains(id, "penthouse"):
		return CategoryPenthouse
	case strings.Contains(id, "premium"):
		return CategoryPremium
	case strings.Contains(id, "suite"):
		return CategorySuite
	case strings.Contains(id, "deluxe"):
		return CategoryDeluxe
	case strings.Contains(id, "economy"):
		return CategoryEconomy
	default:
		return CategoryStandard
	}
}

// Room は客室エンティティを表す
// カタログの参照データであり、予約処理中は不変として扱う
type Room struct {
	ID        string
	Category  Category
	Capacity  int
	BasePrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRoom は新しい客室を作成する
func NewRoom(id string, category Category, capacity int, basePrice float64) *Room {
	now := time.Now()
	return &Room{
		ID:        id,
		Category:  category,
		Capacity:  capacity,
		BasePrice: basePrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は客室の検証を行う
func (r *Room) Validate() error {
	if r.ID == "" {
		return ErrRoomIDRequired
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if r.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if r.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	return nil
}
