package service

import (
	"context"

	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/repository"
	"github.com/weiawesome/momentroom/internal/signup"
	"github.com/weiawesome/momentroom/pkg/log"
)

// accountServiceImpl implements AccountService interface.
type accountServiceImpl struct {
	repo repository.UserRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.UserRepository) AccountService {
	return &accountServiceImpl{repo: repo}
}

// Signup validates the form and registers the account. Every failure is a
// *signup.Outcome.
func (s *accountServiceImpl) Signup(ctx context.Context, form domain.SignupForm) error {
	req, err := signup.Validate(form)
	if err != nil {
		return err
	}
	return s.Register(ctx, req)
}

// Register sends an already validated request and maps failures onto
// outcomes.
func (s *accountServiceImpl) Register(ctx context.Context, req domain.SignupRequest) error {
	l := log.Ctx(ctx)

	if err := s.repo.Signup(ctx, req); err != nil {
		outcome := signup.MapFailure(err)
		l.Debug().Err(err).Str("outcome", outcome.Message()).Msg("signup failed")
		return outcome
	}

	l.Info().Str("nickname", req.Nickname).Msg("account registered")
	return nil
}
