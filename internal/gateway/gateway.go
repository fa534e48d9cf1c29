package gateway

import (
	"context"

	"github.com/labstock/kiosk-service/internal/model"
)

// Gateway is the backend boundary: three request/response operations with no
// internal retry. A failed call mutates no local state; callers decide what
// to roll back.
type Gateway interface {
	Authenticate(ctx context.Context, badgeCode string) (*model.User, error)
	FetchCatalog(ctx context.Context, labID string) ([]model.CatalogItem, error)
	SubmitWithdrawal(ctx context.Context, items []model.WithdrawalItem) (*model.Receipt, error)
}

// AuthError reports a rejected or unreachable badge authentication. Message
// is the backend's display message or a generic fallback.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// FetchError reports an unavailable catalog.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string { return e.Message }

// SubmitError reports a rejected or failed withdrawal submission.
type SubmitError struct {
	Message string
}

func (e *SubmitError) Error() string { return e.Message }
