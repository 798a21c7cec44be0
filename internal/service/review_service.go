package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// ReviewService handles the one-per-user service reviews.
type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, title, comment string, rating int) (*model.Review, error)
	ListAll(ctx context.Context) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// NewReviewService creates the review service.
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, userRepo: userRepo}
}

// Create stores the user's single review. The HasReviewed flag makes the
// limit permanent: it is never reset, not even if the review row goes away.
func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, title, comment string, rating int) (*model.Review, error) {
	if title == "" || comment == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "title and comment are required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "rating must be between 1 and 5")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if user.HasReviewed {
		return nil, apperr.WithMessage(apperr.ErrConflict, "you have already submitted a review")
	}

	review := &model.Review{
		UserID:  userID,
		Title:   title,
		Comment: comment,
		Rating:  rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	user.HasReviewed = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}
