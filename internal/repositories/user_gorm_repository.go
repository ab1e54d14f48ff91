package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sneakstore/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, err)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Update persists changes to an existing user. Save writes all fields, which
// is what the lockout transitions need (Locked back to false, attempts to 0).
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for update: %w", user.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// GORMChallengeRepository is a GORM implementation of ChallengeRepository.
type GORMChallengeRepository struct {
	db *gorm.DB
}

// NewGORMChallengeRepository creates a new instance of GORMChallengeRepository.
func NewGORMChallengeRepository(db *gorm.DB) *GORMChallengeRepository {
	return &GORMChallengeRepository{db: db}
}

// Create creates a new challenge in the database.
func (r *GORMChallengeRepository) Create(challenge *models.Challenge) error {
	if err := r.db.Create(challenge).Error; err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	return nil
}

// FindByUserAndType retrieves the user's challenge of the given type.
func (r *GORMChallengeRepository) FindByUserAndType(userID uint, challengeType string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.First(&challenge, "user_id = ? AND type = ?", userID, challengeType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("challenge of type %s for user %d not found: %w", challengeType, userID, err)
		}
		return nil, fmt.Errorf("failed to get challenge for user %d: %w", userID, err)
	}
	return &challenge, nil
}

// Update persists changes to an existing challenge.
func (r *GORMChallengeRepository) Update(challenge *models.Challenge) error {
	res := r.db.Save(challenge)
	if res.Error != nil {
		return fmt.Errorf("failed to update challenge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("challenge with ID %d not found for update: %w", challenge.ID, gorm.ErrRecordNotFound)
	}
	return nil
}
