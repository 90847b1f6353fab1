package domain

import "time"

// Order status values. Transitions are monotonic:
// REQUESTED -> PAID or REQUESTED -> WITHDRAWN; PAID and WITHDRAWN are terminal.
const (
	OrderRequested = "REQUESTED"
	OrderPaid      = "PAID"
	OrderWithdrawn = "WITHDRAWN"
)

type Order struct {
	OrderID    string      `json:"id" dynamodbav:"order_id"`
	UserID     string      `json:"user_id" dynamodbav:"user_id"`
	Items      []OrderItem `json:"items" dynamodbav:"items"`
	Status     string      `json:"status" dynamodbav:"status"`
	TotalPrice int         `json:"total_price" dynamodbav:"total_price"`
	CreatedAt  time.Time   `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time   `json:"updated" dynamodbav:"updated_at"`
}

// OrderItem references a clothing item from the catalog with a quantity.
type OrderItem struct {
	ClothID  string `json:"cloth_id" dynamodbav:"cloth_id"`
	Name     string `json:"name" dynamodbav:"name"`
	Price    int    `json:"price" dynamodbav:"price"`
	Quantity int    `json:"quantity" dynamodbav:"quantity"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ClothID  string `json:"cloth_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// OrderRef identifies an existing order in withdraw/pay requests.
type OrderRef struct {
	OrderID string `json:"order_id" validate:"required"`
}

// OrderNotice records a user-visible notice created when an order changes
// status.
type OrderNotice struct {
	NoticeID  string    `json:"id" dynamodbav:"notice_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	OrderID   string    `json:"order_id" dynamodbav:"order_id"`
	Message   string    `json:"message" dynamodbav:"message"`
	Read      bool      `json:"read" dynamodbav:"read"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
