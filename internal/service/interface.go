package service

import (
	"context"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/resource"
	"github.com/weiawesome/momentroom/internal/roomview"
)

// RoomService defines room discovery and room page logic.
type RoomService interface {
	SearchRooms(ctx context.Context, params domain.SearchParams) resource.State[[]domain.RoomCardInfo]
	SearchResource() *resource.Resource[[]domain.RoomCardInfo]
	SearchLoader(params domain.SearchParams) resource.Loader[[]domain.RoomCardInfo]

	GetRoom(ctx context.Context, roomID int64) resource.State[*domain.RoomInfo]
	RoomHeader(ctx context.Context, roomID int64) (roomview.Header, resource.State[*domain.RoomInfo])
	RefreshRoom(ctx context.Context, roomID int64) resource.State[*domain.RoomInfo]
	RequestJoin(ctx context.Context, roomID int64) (*domain.JoinRequestResult, error)
}

// AccountService defines account logic.
type AccountService interface {
	Signup(ctx context.Context, form domain.SignupForm) error
	Register(ctx context.Context, req domain.SignupRequest) error
}

// MomentService defines moment logic.
type MomentService interface {
	Create(ctx context.Context, req *domain.CreateMomentRequest) (int64, error)
	FetchInfo(ctx context.Context, momentID int64) (*domain.MomentInfo, error)
}
