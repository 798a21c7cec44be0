package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/otp"
	"github.com/noorjahan04/City-Backend/internal/phone"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// ProfileService handles the profile surface: reading the profile, phone
// verification and the profile picture.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	SendPhoneOTP(ctx context.Context, userID uuid.UUID, phoneNumber string) error
	VerifyPhoneOTP(ctx context.Context, userID uuid.UUID, phoneNumber, code string) (*model.User, error)
	UpdateProfilePic(ctx context.Context, userID uuid.UUID, imageURL string) (*model.User, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	verifier     phone.Verifier
	sessionStore otp.Store
}

// NewProfileService creates the profile service. sessionStore holds the
// provider session handles with a TTL so abandoned verifications expire.
func NewProfileService(userRepo repository.UserRepository, verifier phone.Verifier, sessionStore otp.Store) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		verifier:     verifier,
		sessionStore: sessionStore,
	}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// SendPhoneOTP starts a provider verification and keeps the opaque session
// handle keyed by phone number.
func (s *profileService) SendPhoneOTP(ctx context.Context, userID uuid.UUID, phoneNumber string) error {
	if phoneNumber == "" {
		return apperr.WithMessage(apperr.ErrInvalidInput, "phone is required")
	}

	sessionID, err := s.verifier.StartVerification(ctx, phoneNumber)
	if err != nil {
		return err
	}
	return s.sessionStore.Set(ctx, phoneNumber, sessionID, otp.DefaultTTL)
}

// VerifyPhoneOTP checks the code with the provider and, on success, stores
// the verified phone on the user. The session is consumed only after the
// provider accepts the code, so a mistyped code can be retried.
func (s *profileService) VerifyPhoneOTP(ctx context.Context, userID uuid.UUID, phoneNumber, code string) (*model.User, error) {
	sessionID, err := s.sessionStore.Get(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "no OTP request found for this number")
	}

	if err := s.verifier.CheckCode(ctx, sessionID, code); err != nil {
		return nil, err
	}
	_ = s.sessionStore.Delete(ctx, phoneNumber)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}

	user.Phone = phoneNumber
	user.IsPhoneVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) UpdateProfilePic(ctx context.Context, userID uuid.UUID, imageURL string) (*model.User, error) {
	if imageURL == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "image URL is required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}

	user.ProfilePic = imageURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
