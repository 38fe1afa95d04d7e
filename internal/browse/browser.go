// Package browse holds the room discovery screen: the current search and the
// slot that shows its results.
package browse

import (
	"context"
	"sync"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/internal/resource"
)

// Rooms is a room search result.
type Rooms = []domain.RoomCardInfo

// SearchSource is what a Browser needs from the room service.
type SearchSource interface {
	SearchResource() *resource.Resource[Rooms]
	SearchLoader(params domain.SearchParams) resource.Loader[Rooms]
}

// Browser searches on every input. Only the results of the latest search are
// shown.
type Browser struct {
	source SearchSource
	slot   *resource.Slot[Rooms]

	mu     sync.Mutex
	params domain.SearchParams
}

// New creates a browser showing the default search once started.
func New(source SearchSource) *Browser {
	return &Browser{
		source: source,
		slot:   resource.NewSlot(source.SearchResource()),
		params: domain.DefaultSearchParams(),
	}
}

// Start loads the current search.
func (b *Browser) Start(ctx context.Context) <-chan resource.State[Rooms] {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.load(ctx, b.params)
}

// Input applies one field change and searches with the result. Invalid input
// leaves the search unchanged.
func (b *Browser) Input(ctx context.Context, field, value string) (<-chan resource.State[Rooms], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := query.Compose(b.params, field, value)
	if err != nil {
		return nil, err
	}
	b.params = next

	return b.load(ctx, next), nil
}

// Params returns the current search.
func (b *Browser) Params() domain.SearchParams {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.params
}

// View returns what the results area shows.
func (b *Browser) View() resource.State[Rooms] {
	_, st := b.slot.Current()
	return st
}

// OnChange registers fn to receive every state the results area shows,
// with the key of the search it belongs to. fn must not call Start or Input.
func (b *Browser) OnChange(fn func(query.Key, resource.State[Rooms])) {
	b.slot.OnChange(fn)
}

func (b *Browser) load(ctx context.Context, params domain.SearchParams) <-chan resource.State[Rooms] {
	key := query.DeriveKey(query.KindRooms, params)
	return b.slot.Load(ctx, key, b.source.SearchLoader(params))
}
