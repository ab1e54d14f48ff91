package services

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
)

// TokenIssuer generates the opaque signed credential returned on a
// successful login.
type TokenIssuer interface {
	GenerateAuthToken(user *models.User) (string, error)
}

// SessionService implements the login pipeline: user lookup, email
// verification gate, lockout window, password check with progressive
// lockout, token issue. Each step either passes or terminates the login
// with a specific reason code.
type SessionService struct {
	users               repositories.UserRepository
	challenges          repositories.ChallengeRepository
	tokens              TokenIssuer
	mailer              Mailer
	maxPasswordAttempts int
	minutesToUnlock     int
}

// NewSessionService creates a new SessionService.
func NewSessionService(users repositories.UserRepository, challenges repositories.ChallengeRepository, tokens TokenIssuer, mailer Mailer, maxPasswordAttempts, minutesToUnlock int) *SessionService {
	return &SessionService{
		users:               users,
		challenges:          challenges,
		tokens:              tokens,
		mailer:              mailer,
		maxPasswordAttempts: maxPasswordAttempts,
		minutesToUnlock:     minutesToUnlock,
	}
}

// Login authenticates a user and returns an auth token. Failure reasons:
//   - invalid_credentials: unknown email or wrong password. The same code
//     for both so responses never reveal whether an account exists.
//   - email_not_verified: the email challenge is missing or still active.
//   - account_locked: inside a lockout window, or this attempt triggered one.
func (s *SessionService) Login(email, password string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", apperrors.Unauthorized("invalid_credentials")
	}

	challenge, err := s.challenges.FindByUserAndType(user.ID, models.ChallengeTypeEmail)
	if err != nil || !challenge.Disabled {
		return "", apperrors.Unauthorized("email_not_verified")
	}

	now := time.Now()
	if user.Locked {
		if user.UnlockedAt != nil && now.Before(*user.UnlockedAt) {
			// Still inside the lockout window; the attempt counter is
			// deliberately left untouched.
			return "", apperrors.Unauthorized("account_locked")
		}
		user.Locked = false
		user.PasswordAttempts = 0
		user.UnlockedAt = nil
		if err := s.users.Update(user); err != nil {
			return "", err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", s.registerFailedAttempt(user, now)
	}

	if user.PasswordAttempts != 0 {
		user.PasswordAttempts = 0
		if err := s.users.Update(user); err != nil {
			return "", err
		}
	}

	return s.tokens.GenerateAuthToken(user)
}

// registerFailedAttempt increments the attempt counter and locks the
// account once the configured maximum is reached, notifying the user by
// email exactly once at the locking attempt.
func (s *SessionService) registerFailedAttempt(user *models.User, now time.Time) error {
	user.PasswordAttempts++

	if user.PasswordAttempts >= s.maxPasswordAttempts {
		unlockedAt := now.Add(time.Duration(s.minutesToUnlock) * time.Minute)
		user.Locked = true
		user.UnlockedAt = &unlockedAt
		if err := s.users.Update(user); err != nil {
			return err
		}
		if err := s.mailer.SendEmail(user.Email, TemplateAccountLocked, map[string]any{
			"email":   user.Email,
			"minutes": s.minutesToUnlock,
		}); err != nil {
			log.Printf("Warning: failed to send account locked email to %s: %v", user.Email, err)
		}
		return apperrors.Unauthorized("account_locked")
	}

	if err := s.users.Update(user); err != nil {
		return err
	}
	return apperrors.Unauthorized("invalid_credentials")
}
