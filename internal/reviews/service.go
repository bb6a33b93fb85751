package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
)

// ReviewDTO is a customer review as rendered to clients.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author identifies who is writing a review.
type Author struct {
	UserID   string
	UserName string
}

// Service manages per-product customer reviews. One review per user per
// product; writes recompute the product's average rating.
type Service interface {
	ListByProduct(ctx context.Context, productID int) ([]ReviewDTO, error)
	Add(ctx context.Context, productID int, author Author, rating int, comment string) (*ReviewDTO, error)
	Update(ctx context.Context, reviewID uuid.UUID, author Author, rating int, comment string) (*ReviewDTO, error)
	Delete(ctx context.Context, reviewID uuid.UUID, author Author) error
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	FindByProductAndUser(ctx context.Context, productID int, userID string) (*models.Review, error)
	ListByProduct(ctx context.Context, productID int) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AverageRating(ctx context.Context, productID int) (float64, error)
}

type productReader interface {
	Snapshot(ctx context.Context, productID int) (types.ProductSnapshot, error)
}

type ratingWriter interface {
	UpdateRating(ctx context.Context, productID int, rating float64) error
}

type ServiceParams struct {
	Repo     repository
	Products productReader
	Ratings  ratingWriter
	Logger   *logger.Logger
}

type service struct {
	repo     repository
	products productReader
	ratings  ratingWriter
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "review repository required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "review service requires a product reader")
	}
	if params.Ratings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "review service requires a rating writer")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "review service requires a logger")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		ratings:  params.Ratings,
		logg:     params.Logger,
	}, nil
}

func (s *service) ListByProduct(ctx context.Context, productID int) ([]ReviewDTO, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing reviews")
	}
	dtos := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		dtos = append(dtos, toDTO(&reviews[i]))
	}
	return dtos, nil
}

func (s *service) Add(ctx context.Context, productID int, author Author, rating int, comment string) (*ReviewDTO, error) {
	if err := validateReview(author, rating); err != nil {
		return nil, err
	}

	// The product must exist; not-found propagates as-is.
	if _, err := s.products.Snapshot(ctx, productID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByProductAndUser(ctx, productID, author.UserID); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already reviewed this product")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking existing review")
	}

	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    author.UserID,
		UserName:  author.UserName,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating review")
	}

	s.refreshAverage(ctx, productID)
	dto := toDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, reviewID uuid.UUID, author Author, rating int, comment string) (*ReviewDTO, error) {
	if err := validateReview(author, rating); err != nil {
		return nil, err
	}

	review, err := s.findOwned(ctx, reviewID, author)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = strings.TrimSpace(comment)
	updated, err := s.repo.Update(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating review")
	}

	s.refreshAverage(ctx, review.ProductID)
	dto := toDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, reviewID uuid.UUID, author Author) error {
	review, err := s.findOwned(ctx, reviewID, author)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting review")
	}

	s.refreshAverage(ctx, review.ProductID)
	return nil
}

// findOwned loads the review and enforces that only its author may touch it.
func (s *service) findOwned(ctx context.Context, reviewID uuid.UUID, author Author) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading review")
	}
	if review.UserID != author.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "review belongs to another user")
	}
	return review, nil
}

// refreshAverage writes the recomputed mean rating back onto the listing.
// Best-effort: review writes already succeeded, a stale average self-heals on
// the next write.
func (s *service) refreshAverage(ctx context.Context, productID int) {
	average, err := s.repo.AverageRating(ctx, productID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "average rating read failed")
		return
	}
	if err := s.ratings.UpdateRating(ctx, productID, average); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "average rating write failed")
	}
}

func validateReview(author Author, rating int) error {
	details := map[string]string{}
	if strings.TrimSpace(author.UserID) == "" {
		details["user_id"] = "user is required"
	}
	if rating < 1 || rating > 5 {
		details["rating"] = "rating must be between 1 and 5"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid review").WithDetails(details)
	}
	return nil
}

func toDTO(review *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
