package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/otp"
)

func TestProfileService_SendPhoneOTP(t *testing.T) {
	userID := uuid.New()

	t.Run("stores the provider session under the phone number", func(t *testing.T) {
		mockVerifier := new(MockVerifier)
		mockStore := new(MockOTPStore)

		mockVerifier.On("StartVerification", mock.Anything, "+15550001111").Return("session-123", nil)
		mockStore.On("Set", mock.Anything, "+15550001111", "session-123", otp.DefaultTTL).Return(nil)

		svc := NewProfileService(new(MockUserRepository), mockVerifier, mockStore)
		err := svc.SendPhoneOTP(context.Background(), userID, "+15550001111")

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		mockVerifier := new(MockVerifier)
		mockVerifier.On("StartVerification", mock.Anything, "+15550001111").Return("", apperr.ErrUpstreamFailure)

		svc := NewProfileService(new(MockUserRepository), mockVerifier, new(MockOTPStore))
		err := svc.SendPhoneOTP(context.Background(), userID, "+15550001111")

		assert.ErrorIs(t, err, apperr.ErrUpstreamFailure)
	})

	t.Run("phone required", func(t *testing.T) {
		svc := NewProfileService(new(MockUserRepository), new(MockVerifier), new(MockOTPStore))
		err := svc.SendPhoneOTP(context.Background(), userID, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestProfileService_VerifyPhoneOTP(t *testing.T) {
	userID := uuid.New()

	t.Run("correct code marks the phone verified and consumes the session", func(t *testing.T) {
		mockVerifier := new(MockVerifier)
		mockStore := new(MockOTPStore)
		mockUsers := new(MockUserRepository)

		mockStore.On("Get", mock.Anything, "+15550001111").Return("session-123", nil)
		mockVerifier.On("CheckCode", mock.Anything, "session-123", "123456").Return(nil)
		mockStore.On("Delete", mock.Anything, "+15550001111").Return(nil)
		mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.IsPhoneVerified && u.Phone == "+15550001111"
		})).Return(nil)

		svc := NewProfileService(mockUsers, mockVerifier, mockStore)
		user, err := svc.VerifyPhoneOTP(context.Background(), userID, "+15550001111", "123456")

		assert.NoError(t, err)
		assert.True(t, user.IsPhoneVerified)
		mockStore.AssertExpectations(t)
	})

	t.Run("no pending session", func(t *testing.T) {
		mockStore := new(MockOTPStore)
		mockStore.On("Get", mock.Anything, "+15550001111").Return("", nil)

		svc := NewProfileService(new(MockUserRepository), new(MockVerifier), mockStore)
		_, err := svc.VerifyPhoneOTP(context.Background(), userID, "+15550001111", "123456")

		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("wrong code keeps the session", func(t *testing.T) {
		mockVerifier := new(MockVerifier)
		mockStore := new(MockOTPStore)

		mockStore.On("Get", mock.Anything, "+15550001111").Return("session-123", nil)
		mockVerifier.On("CheckCode", mock.Anything, "session-123", "000000").Return(apperr.WithMessage(apperr.ErrInvalidInput, "invalid OTP"))

		svc := NewProfileService(new(MockUserRepository), mockVerifier, mockStore)
		_, err := svc.VerifyPhoneOTP(context.Background(), userID, "+15550001111", "000000")

		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("retry with the correct code succeeds after a wrong one", func(t *testing.T) {
		mockVerifier := new(MockVerifier)
		mockUsers := new(MockUserRepository)
		sessionStore := otp.NewMemoryStore()

		assert.NoError(t, sessionStore.Set(context.Background(), "+15550001111", "session-123", otp.DefaultTTL))
		mockVerifier.On("CheckCode", mock.Anything, "session-123", "000000").Return(apperr.WithMessage(apperr.ErrInvalidInput, "invalid OTP"))
		mockVerifier.On("CheckCode", mock.Anything, "session-123", "123456").Return(nil)
		mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockUsers.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewProfileService(mockUsers, mockVerifier, sessionStore)

		_, err := svc.VerifyPhoneOTP(context.Background(), userID, "+15550001111", "000000")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)

		user, err := svc.VerifyPhoneOTP(context.Background(), userID, "+15550001111", "123456")
		assert.NoError(t, err)
		assert.True(t, user.IsPhoneVerified)
		mockVerifier.AssertNumberOfCalls(t, "CheckCode", 2)

		remaining, err := sessionStore.Get(context.Background(), "+15550001111")
		assert.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
