package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/auth"
	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/notify"
	"github.com/noorjahan04/City-Backend/internal/otp"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

const (
	bcryptCost = 10
	otpLength  = 6
)

// AuthService handles registration, email verification and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	VerifyEmail(ctx context.Context, email, code string) (accessToken, refreshToken string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	tokenStore   auth.TokenStoreInterface
	otpStore     otp.Store
	notifier     notify.Notifier
	rolePrefixes map[string]string
}

// NewAuthService creates a new authentication service. rolePrefixes maps an
// email local-part prefix to the role assigned at registration; nil or empty
// disables inference.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	otpStore otp.Store,
	notifier notify.Notifier,
	rolePrefixes map[string]string,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		otpStore:     otpStore,
		notifier:     notifier,
		rolePrefixes: rolePrefixes,
	}
}

// inferRole resolves the registration role from the configured prefix table.
// Prefixes are tried longest first so an overlapping pair like "emp" and
// "employee" resolves the same way on every run. Anything unmatched registers
// as a plain user; admins reassign roles explicitly afterwards.
func (s *authService) inferRole(email string) model.Role {
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}

	prefixes := make([]string, 0, len(s.rolePrefixes))
	for prefix := range s.rolePrefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	for _, prefix := range prefixes {
		if strings.HasPrefix(local, prefix) {
			return model.ParseRole(s.rolePrefixes[prefix])
		}
	}
	return model.RoleUser
}

// Register creates an unverified user and dispatches an email OTP.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperr.WithMessage(apperr.ErrConflict, "user already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         s.inferRole(email),
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	code, err := otp.GenerateCode(otpLength)
	if err != nil {
		return nil, err
	}
	if err := s.otpStore.Set(ctx, email, code, otp.DefaultTTL); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	if err := s.notifier.Send(ctx, email, notify.KindOTP, notify.Payload{"otp": code}); err != nil {
		return nil, apperr.WithMessage(apperr.ErrUpstreamFailure, "failed to send OTP")
	}

	return user, nil
}

// VerifyEmail consumes the registration OTP, marks the account verified and
// issues tokens.
func (s *authService) VerifyEmail(ctx context.Context, email, code string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return "", "", nil, err
	}

	stored, err := s.otpStore.GetAndDelete(ctx, email)
	if err != nil {
		return "", "", nil, fmt.Errorf("read otp: %w", err)
	}
	if stored == "" || stored != code {
		return "", "", nil, apperr.WithMessage(apperr.ErrInvalidInput, "invalid OTP")
	}

	user.IsVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", "", nil, fmt.Errorf("mark verified: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a verified user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, apperr.WithMessage(apperr.ErrUnauthenticated, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperr.WithMessage(apperr.ErrUnauthenticated, "invalid email or password")
	}

	if !user.IsVerified {
		return "", "", nil, apperr.WithMessage(apperr.ErrUnauthenticated, "email not verified")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (string, string, *model.User, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperr.WithMessage(apperr.ErrUnauthenticated, "invalid or expired refresh token")
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperr.WithMessage(apperr.ErrUnauthenticated, "invalid or expired refresh token")
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperr.WithMessage(apperr.ErrUnauthenticated, "invalid or expired refresh token")
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperr.WithMessage(apperr.ErrUnauthenticated, "invalid or expired refresh token")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperr.WithMessage(apperr.ErrUnauthenticated, "invalid or expired refresh token")
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		log.Printf("delete refresh token %s: %v", tokenID, err)
	}
	return nil
}
