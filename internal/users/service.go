package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"gorm.io/gorm"
)

// Service is the Identity Store: registration and lookups. Users are never
// updated or deleted here.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	CreateAdmin(ctx context.Context, input RegisterInput) (*UserDTO, error)
	FindByUsername(ctx context.Context, username string) (*UserDTO, error)
	FindByID(ctx context.Context, id uint64) (*UserDTO, error)
}

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo *Repository
	DB   *db.Client
}

type service struct {
	repo *Repository
	db   *db.Client
}

// NewService builds the identity store.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: params.Repo, db: params.DB}, nil
}

// Register creates a non-admin user. Exactly one of two concurrent registrations
// for the same username wins; the other observes CodeUsernameTaken.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	return s.create(ctx, input, false)
}

// CreateAdmin creates a user with the admin flag set. Only seeding tools call it.
func (s *service) CreateAdmin(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	return s.create(ctx, input, true)
}

func (s *service) create(ctx context.Context, input RegisterInput, isAdmin bool) (*UserDTO, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password hash is required")
	}

	var created *UserDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		taken, err := txRepo.UsernameExists(ctx, username)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeUsernameTaken, "username already exists")
		}

		taken, err = txRepo.EmailExists(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeEmailTaken, "email already registered")
		}

		user, err := txRepo.Create(ctx, CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: input.PasswordHash,
			IsAdmin:      isAdmin,
		})
		if err != nil {
			return mapCreateError(err)
		}
		created = FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// mapCreateError turns a lost uniqueness race into the same typed error the
// pre-check would have produced.
func mapCreateError(err error) error {
	switch {
	case db.IsUniqueViolation(err, "username"):
		return pkgerrors.Wrap(pkgerrors.CodeUsernameTaken, err, "username already exists")
	case db.IsUniqueViolation(err, "email"):
		return pkgerrors.Wrap(pkgerrors.CodeEmailTaken, err, "email already registered")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
}

// FindByUsername returns nil when no user matches.
func (s *service) FindByUsername(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user by username")
	}
	return FromModel(user), nil
}

// FindByID returns nil when no user matches.
func (s *service) FindByID(ctx context.Context, id uint64) (*UserDTO, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user by id")
	}
	return FromModel(user), nil
}
