package review

import (
	"math"
	"strings"

	bookingRepo "rentvehicle/database/repository/booking"
	reviewRepo "rentvehicle/database/repository/review"
	userRepo "rentvehicle/database/repository/user"
	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService handles customer ratings on bookings.
type ReviewService interface {
	Create(userID string, input models.CreateReviewInput) (*models.Review, error)
	Update(userID string, role models.Role, reviewID string, rating int, comment string) (*models.Review, error)
	Delete(userID string, role models.Role, reviewID string) error
	ListByModel(modelID string) (*ModelReviews, error)
	ListMine(userID string) ([]models.Review, error)
	ListAll() ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
}

// ModelReviews is the catalog projection: the reviews of a model together
// with their average rating.
type ModelReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	Count         int             `json:"count"`
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Create leaves a rating on one of the customer's own bookings. A booking
// carries at most one review.
func (s *DefaultReviewService) Create(userID string, input models.CreateReviewInput) (*models.Review, error) {
	if !validRating(input.Rating) {
		return nil, utils.ErrInvalidRating
	}

	b, err := s.Bookings.GetByID(input.BookingID)
	if err != nil {
		utils.GetLogger().Error("CreateReview: failed to fetch booking", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if b == nil {
		return nil, utils.ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, utils.ErrBookingNotAuthorized
	}

	existing, err := s.Reviews.GetByBooking(input.BookingID)
	if err != nil {
		utils.GetLogger().Error("CreateReview: failed to check existing review", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing != nil {
		return nil, utils.ErrReviewExists
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("CreateReview: failed to fetch reviewer", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	r := &models.Review{
		ID:             uuid.NewString(),
		BookingID:      b.ID,
		UserID:         userID,
		UserName:       user.FullName,
		VehicleModelID: b.VehicleModelID,
		Rating:         input.Rating,
		Comment:        strings.TrimSpace(input.Comment),
	}
	if err := s.Reviews.Create(r); err != nil {
		utils.GetLogger().Error("CreateReview: failed to persist review", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return r, nil
}

// fetchOwned loads a review and checks the caller may modify it.
func (s *DefaultReviewService) fetchOwned(userID string, role models.Role, reviewID string) (*models.Review, error) {
	r, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		utils.GetLogger().Error("failed to fetch review", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if r == nil {
		return nil, utils.ErrReviewNotFound
	}
	if role != models.RoleAdmin && r.UserID != userID {
		return nil, utils.ErrReviewNotAuthorized
	}
	return r, nil
}

// Update edits the rating or comment of an existing review.
func (s *DefaultReviewService) Update(userID string, role models.Role, reviewID string, rating int, comment string) (*models.Review, error) {
	if !validRating(rating) {
		return nil, utils.ErrInvalidRating
	}

	r, err := s.fetchOwned(userID, role, reviewID)
	if err != nil {
		return nil, err
	}

	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	if err := s.Reviews.Update(r); err != nil {
		utils.GetLogger().Error("UpdateReview: failed to persist review", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return r, nil
}

// Delete removes a review. Admins can moderate any review away.
func (s *DefaultReviewService) Delete(userID string, role models.Role, reviewID string) error {
	if _, err := s.fetchOwned(userID, role, reviewID); err != nil {
		return err
	}
	if err := s.Reviews.Delete(reviewID); err != nil {
		utils.GetLogger().Error("DeleteReview: failed to delete review", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}

// ListByModel returns the reviews of a vehicle model with their average,
// rounded to one decimal for display.
func (s *DefaultReviewService) ListByModel(modelID string) (*ModelReviews, error) {
	reviews, err := s.Reviews.ListByModel(modelID)
	if err != nil {
		utils.GetLogger().Error("ListByModel: failed to list reviews", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	result := &ModelReviews{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		result.AverageRating = math.Round(avg*10) / 10
	}
	return result, nil
}

// ListMine returns the reviews the customer has written.
func (s *DefaultReviewService) ListMine(userID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByUser(userID)
	if err != nil {
		utils.GetLogger().Error("ListMine: failed to list reviews", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return reviews, nil
}

// ListAll returns every review for the back office moderation table.
func (s *DefaultReviewService) ListAll() ([]models.Review, error) {
	reviews, err := s.Reviews.GetAll()
	if err != nil {
		utils.GetLogger().Error("ListAll: failed to list reviews", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return reviews, nil
}
