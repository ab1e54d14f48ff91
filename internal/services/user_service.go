package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
)

// UserService handles registration, the verification/reset challenges and
// auth tokens. It is the TokenIssuer used by SessionService.
type UserService struct {
	users      repositories.UserRepository
	challenges repositories.ChallengeRepository
	mailer     Mailer
	jwtSecret  []byte
	tokenDurat time.Duration
	challTTL   time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, challenges repositories.ChallengeRepository, mailer Mailer, jwtSecret string) *UserService {
	return &UserService{
		users:      users,
		challenges: challenges,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		challTTL:   24 * time.Hour, // Challenge tokens expire after 24 hours
	}
}

// Register creates a user with a hashed password, opens their email
// verification challenge and mails the verification token. Login is gated
// on that challenge until it is verified.
func (s *UserService) Register(email, password string) (*models.User, error) {
	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		return nil, apperrors.UnprocessableEntity("email_already_registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, Password: string(hashedPassword)}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	challenge := &models.Challenge{
		UserID:    user.ID,
		Type:      models.ChallengeTypeEmail,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.challTTL),
	}
	if err := s.challenges.Create(challenge); err != nil {
		return nil, err
	}

	if err := s.mailer.SendEmail(email, TemplateEmailVerification, map[string]any{
		"email": email,
		"token": challenge.Token,
	}); err != nil {
		log.Printf("Warning: failed to send verification email to %s: %v", email, err)
	}
	return user, nil
}

// VerifyEmail validates the token of the user's email challenge and
// disables the challenge, unlocking login for the account.
func (s *UserService) VerifyEmail(userID uint, token string) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return apperrors.NotFound("user_not_found")
	}

	challenge, err := s.challenges.FindByUserAndType(userID, models.ChallengeTypeEmail)
	if err != nil {
		return apperrors.NotFound("challenge_not_found")
	}
	if challenge.Disabled {
		return nil // already verified
	}
	if challenge.Token != token {
		return apperrors.Unauthorized("invalid_token")
	}
	if challenge.Expired(time.Now()) {
		return apperrors.Unauthorized("token_expired")
	}

	challenge.Disabled = true
	return s.challenges.Update(challenge)
}

// SendPasswordResetEmail opens (or refreshes) the user's password-reset
// challenge and mails the token. Unknown emails succeed silently so the
// endpoint cannot be used to enumerate accounts.
func (s *UserService) SendPasswordResetEmail(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		log.Printf("Password reset requested for unknown email %s", email)
		return nil
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(s.challTTL)

	challenge, err := s.challenges.FindByUserAndType(user.ID, models.ChallengeTypePasswordReset)
	if err != nil {
		challenge = &models.Challenge{
			UserID:    user.ID,
			Type:      models.ChallengeTypePasswordReset,
			Token:     token,
			ExpiresAt: expiresAt,
		}
		if err := s.challenges.Create(challenge); err != nil {
			return err
		}
	} else {
		challenge.Token = token
		challenge.ExpiresAt = expiresAt
		challenge.Disabled = false
		if err := s.challenges.Update(challenge); err != nil {
			return err
		}
	}

	if err := s.mailer.SendEmail(email, TemplatePasswordReset, map[string]any{
		"email": email,
		"token": token,
	}); err != nil {
		log.Printf("Warning: failed to send password reset email to %s: %v", email, err)
	}
	return nil
}

// ResetPassword validates the reset token, stores the new password hash and
// clears any lockout state, then disables the challenge.
func (s *UserService) ResetPassword(userID uint, token, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return apperrors.NotFound("user_not_found")
	}

	challenge, err := s.challenges.FindByUserAndType(userID, models.ChallengeTypePasswordReset)
	if err != nil {
		return apperrors.NotFound("challenge_not_found")
	}
	if challenge.Disabled || challenge.Token != token {
		return apperrors.Unauthorized("invalid_token")
	}
	if challenge.Expired(time.Now()) {
		return apperrors.Unauthorized("token_expired")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Locked = false
	user.PasswordAttempts = 0
	user.UnlockedAt = nil
	if err := s.users.Update(user); err != nil {
		return err
	}

	challenge.Disabled = true
	return s.challenges.Update(challenge)
}

// GenerateAuthToken issues a signed JWT for an authenticated user.
func (s *UserService) GenerateAuthToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *UserService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
