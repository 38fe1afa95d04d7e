package service

import (
	"context"
	"time"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/internal/repository"
	"github.com/weiawesome/momentroom/internal/resource"
	"github.com/weiawesome/momentroom/internal/roomview"
	"github.com/weiawesome/momentroom/pkg/log"
)

// roomServiceImpl implements RoomService interface.
type roomServiceImpl struct {
	repo     repository.RoomRepository
	searches *resource.Resource[[]domain.RoomCardInfo]
	rooms    *resource.Resource[*domain.RoomInfo]
}

// NewRoomService creates a new room service. A non-nil store shares search
// results with other clients for ttl. Room info depends on the viewer and is
// only cached in memory.
func NewRoomService(repo repository.RoomRepository, store resource.Store, ttl time.Duration) RoomService {
	searchOpts := []resource.Option{resource.WithSummary(Summarize)}
	if store != nil {
		searchOpts = append(searchOpts, resource.WithStore(store, ttl))
	}

	return &roomServiceImpl{
		repo:     repo,
		searches: resource.New[[]domain.RoomCardInfo](query.KindRooms, searchOpts...),
		rooms:    resource.New[*domain.RoomInfo](query.KindRoom, resource.WithSummary(Summarize)),
	}
}

// SearchRooms resolves a room search, reusing a Ready result for equal
// params.
func (s *roomServiceImpl) SearchRooms(ctx context.Context, params domain.SearchParams) resource.State[[]domain.RoomCardInfo] {
	return s.searches.Fetch(ctx, query.DeriveKey(query.KindRooms, params), s.SearchLoader(params))
}

func (s *roomServiceImpl) SearchResource() *resource.Resource[[]domain.RoomCardInfo] {
	return s.searches
}

func (s *roomServiceImpl) SearchLoader(params domain.SearchParams) resource.Loader[[]domain.RoomCardInfo] {
	return func(ctx context.Context) ([]domain.RoomCardInfo, error) {
		return s.repo.Search(ctx, params)
	}
}

// GetRoom resolves a room as seen by the current viewer.
func (s *roomServiceImpl) GetRoom(ctx context.Context, roomID int64) resource.State[*domain.RoomInfo] {
	return s.rooms.Fetch(ctx, query.RoomKey(roomID), s.roomLoader(roomID))
}

// RoomHeader resolves a room and derives its header. The header is all
// hidden until the room is Ready.
func (s *roomServiceImpl) RoomHeader(ctx context.Context, roomID int64) (roomview.Header, resource.State[*domain.RoomInfo]) {
	st := s.GetRoom(ctx, roomID)
	if !st.IsReady() {
		return roomview.Derive(nil), st
	}
	return roomview.Derive(st.Value), st
}

// RefreshRoom drops the cached room and fetches it again.
func (s *roomServiceImpl) RefreshRoom(ctx context.Context, roomID int64) resource.State[*domain.RoomInfo] {
	key := query.RoomKey(roomID)
	if err := s.rooms.Invalidate(ctx, key); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Int64(log.FieldRoomID, roomID).Msg("failed to invalidate room")
	}
	return s.rooms.Fetch(ctx, key, s.roomLoader(roomID))
}

// RequestJoin asks to join a room, then refreshes it so membership-gated
// state reflects the request.
func (s *roomServiceImpl) RequestJoin(ctx context.Context, roomID int64) (*domain.JoinRequestResult, error) {
	l := log.Ctx(ctx)

	result, err := s.repo.RequestJoin(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if st := s.RefreshRoom(ctx, roomID); st.IsError() {
		l.Warn().Int64(log.FieldRoomID, roomID).Str("message", st.Message).Msg("room refresh after join request failed")
	}

	l.Info().Int64(log.FieldRoomID, roomID).Str("status", result.Status).Msg("join requested")
	return result, nil
}

func (s *roomServiceImpl) roomLoader(roomID int64) resource.Loader[*domain.RoomInfo] {
	return func(ctx context.Context) (*domain.RoomInfo, error) {
		return s.repo.GetByID(ctx, roomID)
	}
}
