package domain

import "time"

// ServiceCategory is a laundry service type offered on the order form
// (e.g. dry cleaning, ironing).
type ServiceCategory struct {
	CategoryID string    `json:"id" dynamodbav:"category_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Cloth is a priced clothing item selectable on the order form.
type Cloth struct {
	ClothID    string    `json:"id" dynamodbav:"cloth_id"`
	CategoryID string    `json:"category_id" dynamodbav:"category_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Price      int       `json:"price" dynamodbav:"price"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

// OrderForm is the reference data the client needs to compose an order.
type OrderForm struct {
	Categories []ServiceCategory `json:"categories"`
	Clothes    []Cloth           `json:"clothes"`
}
