package repository

import (
	"context"

	"github.com/weiawesome/momentroom/internal/api"
	"github.com/weiawesome/momentroom/internal/domain"
)

type httpUserRepository struct {
	client *api.Client
}

// NewHTTPUserRepository creates a user repository over the platform API.
func NewHTTPUserRepository(client *api.Client) UserRepository {
	return &httpUserRepository{client: client}
}

// Signup registers an account. Errors are returned unwrapped so conflict
// codes stay visible to the caller.
func (r *httpUserRepository) Signup(ctx context.Context, req domain.SignupRequest) error {
	return r.client.PostJSON(ctx, "/signup", req, nil)
}
