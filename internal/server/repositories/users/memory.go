package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// MemoryRepository keeps users in process memory. It is used when no
// database DSN is configured. Ids start at 1 and grow by one per insert.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  []models.User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := models.User{
		ID:         r.nextID,
		Username:   user.Username,
		Password:   user.Password,
		Department: user.Department,
	}
	r.nextID++
	r.users = append(r.users, stored)

	return &stored, nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}

	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, &models.User{ID: u.ID, Username: u.Username, Department: u.Department})
	}

	return result, nil
}
