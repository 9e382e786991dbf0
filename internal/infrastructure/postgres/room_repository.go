package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/CoolPrid/roomify/internal/domain/room"
)

type roomRow struct {
	ID        string    `db:"id"`
	Category  string    `db:"category"`
	Capacity  int       `db:"capacity"`
	BasePrice float64   `db:"base_price"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *roomRow) toEntity() *room.Room {
	return &room.Room{
		ID:        r.ID,
		Category:  room.Category(r.Category),
		Capacity:  r.Capacity,
		BasePrice: r.BasePrice,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type RoomRepository struct{ db *sqlx.DB }

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	var row roomRow
	query := `SELECT id, category, capacity, base_price, created_at, updated_at FROM rooms WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("客室取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RoomRepository) Save(ctx context.Context, rm *room.Room) error {
	query := `INSERT INTO rooms (id, category, capacity, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET category = $2, capacity = $3, base_price = $4, updated_at = $6`
	if _, err := r.db.ExecContext(ctx, query, rm.ID, string(rm.Category), rm.Capacity, rm.BasePrice, rm.CreatedAt, rm.UpdatedAt); err != nil {
		return fmt.Errorf("客室保存に失敗: %w", err)
	}
	return nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	var rows []roomRow
	query := `SELECT id, category, capacity, base_price, created_at, updated_at FROM rooms ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("客室一覧取得に失敗: %w", err)
	}
	result := make([]*room.Room, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

var _ room.Repository = (*RoomRepository)(nil)
