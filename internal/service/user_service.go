package service

import (
	"fmt"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LoginInfo is the identity asserted by the external auth provider.
type LoginInfo struct {
	Sub           string
	Email         string
	Name          string
	EmailVerified bool
}

type UserService interface {
	// GetOrCreateUser resolves the authenticated identity to a local user,
	// creating one on first login. Signup is restricted to allowed email
	// domains.
	GetOrCreateUser(info LoginInfo) (*model.User, error)
	GetUser(id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetOrCreateUser(info LoginInfo) (*model.User, error) {
	user, err := s.userRepo.FindBySub(info.Sub)
	if err != nil {
		return nil, err
	}
	if user != nil {
		// Keep local profile fields in sync with the identity provider.
		if user.Email != info.Email || user.Name != info.Name || user.EmailVerified != info.EmailVerified {
			user.Email = info.Email
			user.Name = info.Name
			user.EmailVerified = info.EmailVerified
			if err := s.userRepo.Update(user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if !model.EmailCanSignup(info.Email) {
		return nil, fmt.Errorf("email '%s' is not allowed to sign up", info.Email)
	}
	user = &model.User{
		Sub:           info.Sub,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.EmailVerified,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Str("userID", user.ID.String()).Str("email", user.Email).Msg("New user signed up")
	return user, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(id)
}
