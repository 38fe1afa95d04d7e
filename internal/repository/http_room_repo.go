package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/weiawesome/momentroom/internal/api"
	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/pkg/log"
)

type httpRoomRepository struct {
	client *api.Client
}

// NewHTTPRoomRepository creates a room repository over the platform API.
func NewHTTPRoomRepository(client *api.Client) RoomRepository {
	return &httpRoomRepository{client: client}
}

// Search lists rooms matching params. Rooms repeated in a response are
// dropped after their first occurrence.
func (r *httpRoomRepository) Search(ctx context.Context, params domain.SearchParams) ([]domain.RoomCardInfo, error) {
	var rooms []domain.RoomCardInfo
	if err := r.client.Get(ctx, "/rooms", query.Values(params), &rooms); err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}

	seen := make(map[int64]struct{}, len(rooms))
	unique := rooms[:0]
	for _, room := range rooms {
		id := room.RoomMetadata.RoomID
		if _, dup := seen[id]; dup {
			l := log.Ctx(ctx)
			l.Warn().Int64(log.FieldRoomID, id).Msg("duplicate room in search result")
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, room)
	}

	return unique, nil
}

func (r *httpRoomRepository) GetByID(ctx context.Context, roomID int64) (*domain.RoomInfo, error) {
	var info domain.RoomInfo
	if err := r.client.Get(ctx, fmt.Sprintf("/rooms/%d", roomID), nil, &info); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrRoomNotFound, err)
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &info, nil
}

func (r *httpRoomRepository) RequestJoin(ctx context.Context, roomID int64) (*domain.JoinRequestResult, error) {
	var result domain.JoinRequestResult
	if err := r.client.PostJSON(ctx, fmt.Sprintf("/rooms/%d/join-requests", roomID), nil, &result); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrRoomNotFound, err)
		}
		return nil, fmt.Errorf("failed to request join: %w", err)
	}
	if result.RoomID == 0 {
		result.RoomID = roomID
	}

	return &result, nil
}
