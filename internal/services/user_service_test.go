package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"sneakstore/internal/models"
	"sneakstore/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func TestRegisterOpensEmailChallenge(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	mailer := &recordingMailer{}
	svc := services.NewUserService(users, challenges, mailer, testJWTSecret)

	users.On("GetByEmail", "new@example.com").Return(nil, errors.New("record not found")).Once()
	users.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 7
	}).Return(nil).Once()

	var created *models.Challenge
	challenges.On("Create", mock.AnythingOfType("*models.Challenge")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Challenge)
	}).Return(nil).Once()

	user, err := svc.Register("new@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	assert.NotNil(t, created)
	assert.Equal(t, uint(7), created.UserID)
	assert.Equal(t, models.ChallengeTypeEmail, created.Type)
	assert.False(t, created.Disabled)
	assert.NotEmpty(t, created.Token)
	assert.True(t, created.ExpiresAt.After(time.Now()))

	assert.Len(t, mailer.sent, 1)
	assert.Equal(t, services.TemplateEmailVerification, mailer.sent[0].TemplateID)
	assert.Equal(t, created.Token, mailer.sent[0].Variables["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	svc := services.NewUserService(users, challenges, &recordingMailer{}, testJWTSecret)

	users.On("GetByEmail", "taken@example.com").Return(&models.User{ID: 1, Email: "taken@example.com"}, nil).Once()

	_, err := svc.Register("taken@example.com", "password123")
	assert.EqualError(t, err, "email_already_registered")
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVerifyEmail(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	svc := services.NewUserService(users, challenges, &recordingMailer{}, testJWTSecret)

	user := &models.User{ID: 7, Email: "new@example.com"}
	challenge := &models.Challenge{
		UserID:    7,
		Type:      models.ChallengeTypeEmail,
		Token:     "the-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	users.On("GetByID", uint(7)).Return(user, nil)
	challenges.On("FindByUserAndType", uint(7), models.ChallengeTypeEmail).Return(challenge, nil)

	// Wrong token is refused and leaves the challenge active.
	err := svc.VerifyEmail(7, "not-the-token")
	assert.EqualError(t, err, "invalid_token")
	assert.False(t, challenge.Disabled)

	challenges.On("Update", challenge).Return(nil).Once()
	assert.NoError(t, svc.VerifyEmail(7, "the-token"))
	assert.True(t, challenge.Disabled)

	// Verifying again is a no-op, not an error.
	assert.NoError(t, svc.VerifyEmail(7, "the-token"))
	challenges.AssertExpectations(t)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	svc := services.NewUserService(users, challenges, &recordingMailer{}, testJWTSecret)

	users.On("GetByID", uint(7)).Return(&models.User{ID: 7}, nil).Once()
	challenges.On("FindByUserAndType", uint(7), models.ChallengeTypeEmail).Return(&models.Challenge{
		UserID:    7,
		Type:      models.ChallengeTypeEmail,
		Token:     "the-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil).Once()

	err := svc.VerifyEmail(7, "the-token")
	assert.EqualError(t, err, "token_expired")
}

func TestSendPasswordResetEmailUnknownAddress(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	mailer := &recordingMailer{}
	svc := services.NewUserService(users, challenges, mailer, testJWTSecret)

	users.On("GetByEmail", "ghost@example.com").Return(nil, errors.New("record not found")).Once()

	// Succeeds silently so the endpoint cannot enumerate accounts.
	assert.NoError(t, svc.SendPasswordResetEmail("ghost@example.com"))
	assert.Empty(t, mailer.sent)
	challenges.AssertNotCalled(t, "Create", mock.Anything)
}

func TestResetPasswordClearsLockout(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	svc := services.NewUserService(users, challenges, &recordingMailer{}, testJWTSecret)

	unlockedAt := time.Now().Add(10 * time.Minute)
	user := &models.User{
		ID:               7,
		Email:            "new@example.com",
		Locked:           true,
		PasswordAttempts: 3,
		UnlockedAt:       &unlockedAt,
	}
	challenge := &models.Challenge{
		UserID:    7,
		Type:      models.ChallengeTypePasswordReset,
		Token:     "reset-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	users.On("GetByID", uint(7)).Return(user, nil).Once()
	challenges.On("FindByUserAndType", uint(7), models.ChallengeTypePasswordReset).Return(challenge, nil).Once()
	users.On("Update", user).Return(nil).Once()
	challenges.On("Update", challenge).Return(nil).Once()

	assert.NoError(t, svc.ResetPassword(7, "reset-token", "brand new password"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand new password")))
	assert.False(t, user.Locked)
	assert.Equal(t, 0, user.PasswordAttempts)
	assert.Nil(t, user.UnlockedAt)
	assert.True(t, challenge.Disabled)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	svc := services.NewUserService(new(MockUserRepository), new(MockChallengeRepository), &recordingMailer{}, testJWTSecret)

	user := &models.User{ID: 42, Email: "round@example.com"}
	token, err := svc.GenerateAuthToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "round@example.com", claims["email"])

	_, err = svc.ValidateToken(token + "tampered")
	assert.Error(t, err)
}
