package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CoolPrid/roomify/internal/domain/room"
)

func TestRoomService_SaveRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("有効な客室を保存できる", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*room.Room")).Return(nil)

		service := NewRoomService(mockRepo)
		r, err := service.SaveRoom(ctx, SaveRoomInput{
			ID:        "deluxe-7",
			Category:  room.CategoryDeluxe,
			Capacity:  3,
			BasePrice: 180,
		})

		require.NoError(t, err)
		assert.Equal(t, "deluxe-7", r.ID)
		assert.Equal(t, room.CategoryDeluxe, r.Category)
		mockRepo.AssertExpectations(t)
	})

	t.Run("不正な客室は保存しない", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)

		service := NewRoomService(mockRepo)
		_, err := service.SaveRoom(ctx, SaveRoomInput{
			ID:        "deluxe-7",
			Category:  "castle",
			Capacity:  3,
			BasePrice: 180,
		})

		assert.ErrorIs(t, err, room.ErrInvalidCategory)
		mockRepo.AssertNotCalled(t, "Save")
	})
}

func TestRoomService_GetRoom(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRoomRepository)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, room.ErrRoomNotFound)

	service := NewRoomService(mockRepo)
	_, err := service.GetRoom(ctx, "missing")

	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}
