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

const (
	testMaxAttempts     = 3
	testMinutesToUnlock = 15
)

func newSessionService(users *MockUserRepository, challenges *MockChallengeRepository, tokens *MockTokenIssuer, mailer *recordingMailer) *services.SessionService {
	return services.NewSessionService(users, challenges, tokens, mailer, testMaxAttempts, testMinutesToUnlock)
}

func verifiedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.User{ID: 1, Email: "user@example.com", Password: string(hash)}
}

func disabledEmailChallenge(userID uint) *models.Challenge {
	return &models.Challenge{UserID: userID, Type: models.ChallengeTypeEmail, Disabled: true}
}

func TestLoginSuccess(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)
	mailer := &recordingMailer{}

	user := verifiedUser(t, "correct horse")
	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()
	tokens.On("GenerateAuthToken", user).Return("signed-token", nil).Once()

	token, err := newSessionService(users, challenges, tokens, mailer).Login(user.Email, "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Empty(t, mailer.sent)
	users.AssertNotCalled(t, "Update", mock.Anything)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)

	users.On("GetByEmail", "ghost@example.com").Return(nil, errors.New("record not found")).Once()

	_, err := newSessionService(users, challenges, tokens, &recordingMailer{}).Login("ghost@example.com", "whatever")
	assert.EqualError(t, err, "invalid_credentials")
}

func TestLoginEmailNotVerified(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)

	user := verifiedUser(t, "correct horse")
	users.On("GetByEmail", user.Email).Return(user, nil).Twice()

	// No challenge row at all.
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(nil, errors.New("record not found")).Once()
	svc := newSessionService(users, challenges, tokens, &recordingMailer{})
	_, err := svc.Login(user.Email, "correct horse")
	assert.EqualError(t, err, "email_not_verified")

	// Challenge present but still active.
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(&models.Challenge{
		UserID: user.ID, Type: models.ChallengeTypeEmail, Disabled: false,
	}, nil).Once()
	_, err = svc.Login(user.Email, "correct horse")
	assert.EqualError(t, err, "email_not_verified")
}

func TestLoginWrongPasswordCountsAttempt(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)
	mailer := &recordingMailer{}

	user := verifiedUser(t, "correct horse")
	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()
	users.On("Update", user).Return(nil).Once()

	_, err := newSessionService(users, challenges, tokens, mailer).Login(user.Email, "wrong")
	assert.EqualError(t, err, "invalid_credentials")
	assert.Equal(t, 1, user.PasswordAttempts)
	assert.False(t, user.Locked)
	assert.Empty(t, mailer.sent)
}

func TestLoginLockingAttemptSendsEmailOnce(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)
	mailer := &recordingMailer{}

	user := verifiedUser(t, "correct horse")
	user.PasswordAttempts = testMaxAttempts - 1
	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()
	users.On("Update", user).Return(nil).Once()

	_, err := newSessionService(users, challenges, tokens, mailer).Login(user.Email, "wrong")
	assert.EqualError(t, err, "account_locked")
	assert.True(t, user.Locked)
	assert.NotNil(t, user.UnlockedAt)
	assert.WithinDuration(t, time.Now().Add(testMinutesToUnlock*time.Minute), *user.UnlockedAt, 5*time.Second)

	assert.Len(t, mailer.sent, 1)
	assert.Equal(t, user.Email, mailer.sent[0].To)
	assert.Equal(t, services.TemplateAccountLocked, mailer.sent[0].TemplateID)
	assert.Equal(t, user.Email, mailer.sent[0].Variables["email"])
	assert.Equal(t, testMinutesToUnlock, mailer.sent[0].Variables["minutes"])
}

func TestLoginInsideLockoutWindow(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)
	mailer := &recordingMailer{}

	user := verifiedUser(t, "correct horse")
	unlockedAt := time.Now().Add(10 * time.Minute)
	user.Locked = true
	user.PasswordAttempts = testMaxAttempts
	user.UnlockedAt = &unlockedAt

	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()

	// Even the correct password is refused inside the window, and the
	// attempt counter stays untouched.
	_, err := newSessionService(users, challenges, tokens, mailer).Login(user.Email, "correct horse")
	assert.EqualError(t, err, "account_locked")
	assert.Equal(t, testMaxAttempts, user.PasswordAttempts)
	assert.Empty(t, mailer.sent)
	users.AssertNotCalled(t, "Update", mock.Anything)
}

func TestLoginAfterLockoutExpiry(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)

	user := verifiedUser(t, "correct horse")
	unlockedAt := time.Now().Add(-time.Minute)
	user.Locked = true
	user.PasswordAttempts = testMaxAttempts
	user.UnlockedAt = &unlockedAt

	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()
	users.On("Update", user).Return(nil).Once()
	tokens.On("GenerateAuthToken", user).Return("signed-token", nil).Once()

	token, err := newSessionService(users, challenges, tokens, &recordingMailer{}).Login(user.Email, "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.False(t, user.Locked)
	assert.Equal(t, 0, user.PasswordAttempts)
	assert.Nil(t, user.UnlockedAt)
}

func TestLoginSuccessResetsAttemptCounter(t *testing.T) {
	users := new(MockUserRepository)
	challenges := new(MockChallengeRepository)
	tokens := new(MockTokenIssuer)

	user := verifiedUser(t, "correct horse")
	user.PasswordAttempts = 2

	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	challenges.On("FindByUserAndType", user.ID, models.ChallengeTypeEmail).Return(disabledEmailChallenge(user.ID), nil).Once()
	users.On("Update", user).Return(nil).Once()
	tokens.On("GenerateAuthToken", user).Return("signed-token", nil).Once()

	_, err := newSessionService(users, challenges, tokens, &recordingMailer{}).Login(user.Email, "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, 0, user.PasswordAttempts)
	users.AssertExpectations(t)
}
