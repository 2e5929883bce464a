package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string
	Email    string
	Role     string
	Password string
}

type AccountService struct {
	repo  repository.AccountRepository
	newID func() string
	cost  int
}

func NewAccountService(r repository.AccountRepository) *AccountService {
	return &AccountService{
		repo:  r,
		newID: uuid.NewString,
		cost:  bcrypt.DefaultCost,
	}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &domain.Account{
		ID:           s.newID(),
		Username:     in.Username,
		Email:        email,
		Role:         in.Role,
		PasswordHash: string(hash),
	}
	// The unique email index still catches a concurrent registration that
	// slipped past the lookup above.
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Info().Str("account_id", a.ID).Msg("account registered")
	return a, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return a, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return s.repo.FindAll(ctx)
}
