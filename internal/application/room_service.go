package application

import (
	"context"
	"fmt"

	"github.com/CoolPrid/roomify/internal/domain/room"
)

// RoomService は客室カタログを扱う
type RoomService struct {
	rooms room.Repository
}

// NewRoomService は客室サービスを作成する
func NewRoomService(rooms room.Repository) *RoomService {
	return &RoomService{rooms: rooms}
}

// GetRoom はIDから客室を取得する
func (s *RoomService) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// SaveRoomInput は客室登録の入力
type SaveRoomInput struct {
	ID        string
	Category  room.Category
	Capacity  int
	BasePrice float64
}

// SaveRoom は客室を登録または更新する
func (s *RoomService) SaveRoom(ctx context.Context, input SaveRoomInput) (*room.Room, error) {
	r := room.NewRoom(input.ID, input.Category, input.Capacity, input.BasePrice)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.rooms.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("客室の保存に失敗: %w", err)
	}
	return r, nil
}

// ListRooms は客室一覧を取得する
func (s *RoomService) ListRooms(ctx context.Context) ([]*room.Room, error) {
	return s.rooms.List(ctx)
}
