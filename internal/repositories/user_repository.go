package repositories

import "sneakstore/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

// ChallengeRepository defines the interface for challenge data access.
// A user has at most one challenge per type; FindByUserAndType returns it.
type ChallengeRepository interface {
	Create(challenge *models.Challenge) error
	FindByUserAndType(userID uint, challengeType string) (*models.Challenge, error)
	Update(challenge *models.Challenge) error
}
