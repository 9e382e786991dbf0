package room

import "context"

// Repository は客室カタログのインターフェース
type Repository interface {
	// GetByID はIDから客室を取得する
	GetByID(ctx context.Context, id string) (*Room, error)

	// Save は客室を保存する（存在すれば更新）
	Save(ctx context.Context, room *Room) error

	// List は客室一覧を取得する
	List(ctx context.Context) ([]*Room, error)
}
