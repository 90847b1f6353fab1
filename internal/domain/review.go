package domain

import "time"

// Review is written once per completed order and may carry one uploaded image.
type Review struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	OrderID   string    `json:"order_id" dynamodbav:"order_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Content   string    `json:"content" dynamodbav:"content"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	ImageKey  string    `json:"-" dynamodbav:"image_key"`
	ImageURL  string    `json:"image_url,omitempty" dynamodbav:"image_url"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateReviewRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}
