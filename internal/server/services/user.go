// Package services contains server-side business logic. UserService
// implements listing, registration and login on top of the credential
// store, the password hasher and the token issuer.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
)

// TokenSigner signs the claims of a freshly authenticated user.
type TokenSigner interface {
	Sign(userID int64, username, role string) (string, error)
}

// LoginResult is what a successful login yields.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	signer      TokenSigner
}

func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher auth.Hasher, signer TokenSigner) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		signer:      signer,
	}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// Register creates a user unless the username is already taken
// (common.ErrorAlreadyExists). The check and the insert are separate store
// calls, so two concurrent registrations of one name can both pass the check;
// the database unique constraint then rejects the second insert as a plain
// error.
func (s *UserService) Register(ctx context.Context, username, password, department string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Username:   username,
		Password:   hash,
		Department: department,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and signs a token with the fixed "normal"
// role. Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {

	user, err := s.repomanager.Users(s.db).GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.signer.Sign(user.ID, user.Username, common.RoleNormal)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
