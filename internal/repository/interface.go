package repository

import (
	"context"
	"errors"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/media"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrMomentNotFound = errors.New("moment not found")
)

// RoomRepository defines room reads and actions against the platform.
type RoomRepository interface {
	Search(ctx context.Context, params domain.SearchParams) ([]domain.RoomCardInfo, error)
	GetByID(ctx context.Context, roomID int64) (*domain.RoomInfo, error)
	RequestJoin(ctx context.Context, roomID int64) (*domain.JoinRequestResult, error)
}

// MomentRepository defines moment operations against the platform.
type MomentRepository interface {
	Create(ctx context.Context, roomID int64, content string, attachments []*media.Attachment) (*domain.CreateMomentResult, error)
	GetByID(ctx context.Context, momentID int64) (*domain.MomentInfo, error)
}

// UserRepository defines account operations against the platform.
type UserRepository interface {
	Signup(ctx context.Context, req domain.SignupRequest) error
}
