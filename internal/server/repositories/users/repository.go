// Package users contains the credential store: the Repository contract and
// its PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
