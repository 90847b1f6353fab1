package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/pkg/id"
)

// ImageInput carries one optional uploaded image for a review.
type ImageInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type Service interface {
	ListAll(ctx context.Context) ([]domain.Review, error)
	GetByID(ctx context.Context, reviewID string) (*domain.Review, error)
	// Create writes one review for an order the caller owns. A second review
	// for the same order fails with domain.ErrConflict. image may be nil.
	Create(ctx context.Context, userID string, req domain.CreateReviewRequest, image *ImageInput) (*domain.Review, error)
	// ImageURL returns a short-lived presigned URL for the review's image, or
	// domain.ErrNotFound when the review has none.
	ImageURL(ctx context.Context, reviewID string) (string, error)
}

type reviewStore interface {
	Put(ctx context.Context, r *domain.Review) error
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	GetByOrder(ctx context.Context, orderID string) (*domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
}

type orderStore interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// imageURLTTL bounds how long a presigned review-image link stays valid.
const imageURLTTL = 15 * time.Minute

type service struct {
	reviews reviewStore
	orders  orderStore
	images  objectStore
}

func NewService(reviews reviewStore, orders orderStore, images objectStore) Service {
	return &service{reviews: reviews, orders: orders, images: images}
}

func (s *service) ListAll(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *service) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.reviews.Get(ctx, reviewID)
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateReviewRequest, image *ImageInput) (*domain.Review, error) {
	o, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, fmt.Errorf("order %s belongs to another user: %w", req.OrderID, domain.ErrForbidden)
	}
	if _, err := s.reviews.GetByOrder(ctx, req.OrderID); err == nil {
		return nil, fmt.Errorf("order %s already reviewed: %w", req.OrderID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	reviewID := id.New()
	var imageKey, imageURL string
	if image != nil && image.Reader != nil {
		imageKey = fmt.Sprintf("reviews/%s/%s", reviewID, sanitizeFilename(image.Filename))
		imageURL, err = s.images.Upload(ctx, imageKey, image.Reader, image.ContentType)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	rev := &domain.Review{
		ReviewID:  reviewID,
		OrderID:   req.OrderID,
		UserID:    userID,
		Content:   req.Content,
		Rating:    req.Rating,
		ImageKey:  imageKey,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Put(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) ImageURL(ctx context.Context, reviewID string) (string, error) {
	rev, err := s.reviews.Get(ctx, reviewID)
	if err != nil {
		return "", err
	}
	if rev.ImageKey == "" {
		return "", fmt.Errorf("review %s has no image: %w", reviewID, domain.ErrNotFound)
	}
	return s.images.PresignedURL(ctx, rev.ImageKey, imageURLTTL)
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
