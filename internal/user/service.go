package user

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/auth"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// CustomerProvisioner creates the customer profile owned by a new user.
type CustomerProvisioner interface {
	Provision(ctx context.Context, userID uint, email string) (*customer.Customer, error)
}

type Service interface {
	Register(ctx context.Context, in Credentials) (string, *User, error)
	Login(ctx context.Context, in Credentials) (string, *User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register creates the user and its customer profile in one transaction and
// returns a signed access token.
func (s *service) Register(ctx context.Context, in Credentials) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := utils.ValidateStruct(in); err != nil {
		log.Warn("invalid register input", zap.Error(err))
		return "", nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	var u *User
	err = s.repo.WithinTx(ctx, func(users Repository, customers CustomerProvisioner) error {
		created, err := users.Create(ctx, in.Email, hashed, RoleUser)
		if err != nil {
			return err
		}
		if _, err := customers.Provision(ctx, created.ID, created.Email); err != nil {
			log.Error("failed to provision customer", zap.Uint("user_id", created.ID), zap.Error(err))
			return err
		}
		u = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn("email already registered", zap.String("email", in.Email))
		}
		return "", nil, err
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return token, u, nil
}

func (s *service) Login(ctx context.Context, in Credentials) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Warn("email not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(in.Password, u.Password) {
		log.Warn("password not match", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
