package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/media"
	"github.com/weiawesome/momentroom/internal/query"
	"github.com/weiawesome/momentroom/internal/repository"
	"github.com/weiawesome/momentroom/pkg/log"
)

var ErrCreateFailed = errors.New("failed to create moment")

// momentServiceImpl implements MomentService interface.
type momentServiceImpl struct {
	repo  repository.MomentRepository
	media media.Source
}

// NewMomentService creates a new moment service.
func NewMomentService(repo repository.MomentRepository, source media.Source) MomentService {
	return &momentServiceImpl{
		repo:  repo,
		media: source,
	}
}

// Create opens every attachment and uploads the moment. Failures wrap
// ErrCreateFailed; nothing is retried.
func (s *momentServiceImpl) Create(ctx context.Context, req *domain.CreateMomentRequest) (int64, error) {
	l := log.Ctx(ctx)

	attachments, err := s.openAll(ctx, req.Attachments)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	result, err := s.repo.Create(ctx, req.RoomID, req.Content, attachments)
	if err != nil {
		l.Warn().Err(err).Int64(log.FieldRoomID, req.RoomID).Msg("moment upload failed")
		return 0, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	l.Info().Int64(log.FieldRoomID, req.RoomID).Int64(log.FieldMomentID, result.MomentID).Int("attachments", len(attachments)).Msg("moment created")
	return result.MomentID, nil
}

// openAll opens refs in parallel, keeping their order. On failure every
// opened attachment is closed.
func (s *momentServiceImpl) openAll(ctx context.Context, refs []string) ([]*media.Attachment, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	if s.media == nil {
		return nil, fmt.Errorf("%w: no media source configured", media.ErrUnsupportedRef)
	}

	attachments := make([]*media.Attachment, len(refs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			a, err := s.media.Open(gCtx, ref)
			if err != nil {
				return err
			}
			attachments[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, a := range attachments {
			if a != nil {
				a.Body.Close()
			}
		}
		return nil, err
	}

	return attachments, nil
}

// FetchInfo reads a moment directly, without caching or deduplication.
func (s *momentServiceImpl) FetchInfo(ctx context.Context, momentID int64) (*domain.MomentInfo, error) {
	l := log.Ctx(ctx)

	info, err := s.repo.GetByID(ctx, momentID)
	if err != nil {
		l.Debug().Err(err).Str(log.FieldKey, string(query.MomentKey(momentID))).Msg("moment fetch failed")
		return nil, err
	}
	return info, nil
}
