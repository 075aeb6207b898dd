package usecase

import (
	"context"
	"time"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// UserUseCase manages account owners.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, idGen: idGen}
}

// CreateUserInput represents input for registering an owner.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser registers a new account owner.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves an owner by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
