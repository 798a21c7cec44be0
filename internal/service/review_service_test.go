package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
)

func TestReviewService_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		title         string
		comment       string
		rating        int
		setupMock     func(*MockReviewRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name:    "first review accepted and flag set",
			title:   "Great service",
			comment: "My pothole complaint was fixed in a week",
			rating:  5,
			setupMock: func(mReviews *MockReviewRepository, mUsers *MockUserRepository) {
				mUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mReviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				mUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.HasReviewed
				})).Return(nil)
			},
		},
		{
			name:    "second review rejected",
			title:   "Another one",
			comment: "Trying again",
			rating:  4,
			setupMock: func(mReviews *MockReviewRepository, mUsers *MockUserRepository) {
				mUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, HasReviewed: true}, nil)
			},
			expectedError: apperr.ErrConflict,
		},
		{
			name:          "rating out of range",
			title:         "Bad rating",
			comment:       "Six stars",
			rating:        6,
			setupMock:     func(mReviews *MockReviewRepository, mUsers *MockUserRepository) {},
			expectedError: apperr.ErrInvalidInput,
		},
		{
			name:          "missing title",
			title:         "",
			comment:       "No title",
			rating:        3,
			setupMock:     func(mReviews *MockReviewRepository, mUsers *MockUserRepository) {},
			expectedError: apperr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockReviews, mockUsers)

			svc := NewReviewService(mockReviews, mockUsers)
			review, err := svc.Create(context.Background(), userID, tt.title, tt.comment, tt.rating)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, review)
				mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				assert.Equal(t, tt.rating, review.Rating)
			}

			mockReviews.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}
