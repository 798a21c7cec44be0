package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/auth"
	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
)

var testRolePrefixes = map[string]string{
	"admin": "admin",
	"emp":   "employee",
	"sub":   "subemployee",
}

func newTestAuthService(
	userRepo *MockUserRepository,
	tokenStore *MockTokenStore,
	otpStore *MockOTPStore,
	notifier *MockNotifier,
) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(userRepo, jwtService, tokenStore, otpStore, notifier, testRolePrefixes)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		expectedRole  model.Role
		setupMock     func(*MockUserRepository, *MockOTPStore, *MockNotifier)
		expectedError error
	}{
		{
			name:         "plain address registers as user",
			email:        "citizen@example.com",
			expectedRole: model.RoleUser,
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mNotify *MockNotifier) {
				mRepo.On("FindByEmail", mock.Anything, "citizen@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mOTP.On("Set", mock.Anything, "citizen@example.com", mock.Anything, mock.Anything).Return(nil)
				mNotify.On("Send", mock.Anything, "citizen@example.com", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:         "emp prefix registers as employee",
			email:        "emp_roads@example.com",
			expectedRole: model.RoleEmployee,
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mNotify *MockNotifier) {
				mRepo.On("FindByEmail", mock.Anything, "emp_roads@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mOTP.On("Set", mock.Anything, "emp_roads@example.com", mock.Anything, mock.Anything).Return(nil)
				mNotify.On("Send", mock.Anything, "emp_roads@example.com", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:         "sub prefix registers as sub-employee",
			email:        "sub_water@example.com",
			expectedRole: model.RoleSubEmployee,
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mNotify *MockNotifier) {
				mRepo.On("FindByEmail", mock.Anything, "sub_water@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mOTP.On("Set", mock.Anything, "sub_water@example.com", mock.Anything, mock.Anything).Return(nil)
				mNotify.On("Send", mock.Anything, "sub_water@example.com", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:  "duplicate email rejected",
			email: "taken@example.com",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mNotify *MockNotifier) {
				mRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperr.ErrConflict,
		},
		{
			name:  "email delivery failure surfaces as upstream error",
			email: "citizen@example.com",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mNotify *MockNotifier) {
				mRepo.On("FindByEmail", mock.Anything, "citizen@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mOTP.On("Set", mock.Anything, "citizen@example.com", mock.Anything, mock.Anything).Return(nil)
				mNotify.On("Send", mock.Anything, "citizen@example.com", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			expectedError: apperr.ErrUpstreamFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			mockOTPStore := new(MockOTPStore)
			mockNotifier := new(MockNotifier)
			tt.setupMock(mockRepo, mockOTPStore, mockNotifier)

			svc := newTestAuthService(mockRepo, mockTokenStore, mockOTPStore, mockNotifier)
			user, err := svc.Register(context.Background(), "Test User", tt.email, "password123")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.False(t, user.IsVerified)
				assert.NotEmpty(t, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockOTPStore.AssertExpectations(t)
			mockNotifier.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_OverlappingPrefixes(t *testing.T) {
	// "employee" and "emp" overlap; the longer prefix must win on every run.
	prefixes := map[string]string{
		"emp":      "subemployee",
		"employee": "employee",
	}

	tests := []struct {
		email        string
		expectedRole model.Role
	}{
		{"employee_roads@example.com", model.RoleEmployee},
		{"emp_roads@example.com", model.RoleSubEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockOTPStore := new(MockOTPStore)
			mockNotifier := new(MockNotifier)
			mockRepo.On("FindByEmail", mock.Anything, tt.email).Return(nil, gorm.ErrRecordNotFound)
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			mockOTPStore.On("Set", mock.Anything, tt.email, mock.Anything, mock.Anything).Return(nil)
			mockNotifier.On("Send", mock.Anything, tt.email, mock.Anything, mock.Anything).Return(nil)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore), mockOTPStore, mockNotifier, prefixes)

			user, err := svc.Register(context.Background(), "Test User", tt.email, "password123")
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRole, user.Role)
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		setupMock     func(*MockUserRepository, *MockOTPStore, *MockTokenStore)
		expectedError error
	}{
		{
			name: "valid code verifies and issues tokens",
			code: "123456",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(&model.User{
					Email: "new@example.com",
					Role:  model.RoleUser,
				}, nil)
				mOTP.On("GetAndDelete", mock.Anything, "new@example.com").Return("123456", nil)
				mRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.IsVerified
				})).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "new@example.com", mock.Anything).Return(nil)
			},
		},
		{
			name: "wrong code rejected",
			code: "000000",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(&model.User{Email: "new@example.com"}, nil)
				mOTP.On("GetAndDelete", mock.Anything, "new@example.com").Return("123456", nil)
			},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name: "expired code rejected",
			code: "123456",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(&model.User{Email: "new@example.com"}, nil)
				mOTP.On("GetAndDelete", mock.Anything, "new@example.com").Return("", nil)
			},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name: "unknown email",
			code: "123456",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			mockOTPStore := new(MockOTPStore)
			mockNotifier := new(MockNotifier)
			tt.setupMock(mockRepo, mockOTPStore, mockTokenStore)

			svc := newTestAuthService(mockRepo, mockTokenStore, mockOTPStore, mockNotifier)
			accessToken, refreshToken, user, err := svc.VerifyEmail(context.Background(), "new@example.com", tt.code)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.True(t, user.IsVerified)
			}

			mockRepo.AssertExpectations(t)
			mockOTPStore.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
					IsVerified:   true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "test@example.com", mock.Anything).Return(nil)
			},
		},
		{
			name:     "unknown email",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrUnauthenticated,
		},
		{
			name:     "wrong password",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					IsVerified:   true,
				}, nil)
			},
			expectedError: apperr.ErrUnauthenticated,
		},
		{
			name:     "unverified account cannot log in",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					IsVerified:   false,
				}, nil)
			},
			expectedError: apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			svc := newTestAuthService(mockRepo, mockTokenStore, new(MockOTPStore), new(MockNotifier))
			accessToken, refreshToken, user, err := svc.Login(context.Background(), "test@example.com", tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "test@example.com", "user")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "test@example.com", nil)

		svc := newTestAuthService(new(MockUserRepository), mockTokenStore, new(MockOTPStore), new(MockNotifier))
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "test@example.com", "user")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", assert.AnError)

		svc := newTestAuthService(new(MockUserRepository), mockTokenStore, new(MockOTPStore), new(MockNotifier))
		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository), new(MockTokenStore), new(MockOTPStore), new(MockNotifier))
		_, err := svc.RefreshToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}
