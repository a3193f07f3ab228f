package testmodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

type User struct {

	// Unique identifier, generated by the database.
	ID uint `gorm:"primaryKey" seed:"id" dynamodbav:"id"`

	// Full name of the user.
	// Required: true
	Name string `seed:"name" dynamodbav:"name"`

	// Age in years.
	Age int `seed:"age" dynamodbav:"age"`

	// Timestamp when the user was created.
	CreatedAt time.Time `seed:"createdAt" dynamodbav:"createdAt"`
}

type Customer struct {

	// Unique identifier for the customer.
	// Required: true
	ID string `seed:"id" dynamodbav:"id"`

	// Name of the customer.
	// Required: true
	Name string `seed:"name" dynamodbav:"name"`

	// Contact email.
	// Format: email
	Email string `seed:"email" dynamodbav:"email"`

	// VIP customers get priority handling.
	VIP bool `seed:"vip" dynamodbav:"vip"`

	// Timestamp when the customer signed up.
	// Format: date-time
	SignedUpAt *strfmt.DateTime `seed:"signedUpAt" dynamodbav:"signedUpAt"`
}

type Order struct {

	// Unique identifier for the order.
	// Required: true
	ID string `seed:"id" dynamodbav:"id"`

	// Order total.
	Total float64 `seed:"total" dynamodbav:"total"`

	// Customer placing the order.
	// Required: true
	Customer *Customer `seed:"customer" dynamodbav:"customer"`

	// Timestamp when the order was placed.
	// Format: date-time
	PlacedAt strfmt.DateTime `seed:"placedAt" dynamodbav:"placedAt"`

	// Delivery location, free-form.
	Location map[string]any `seed:"location" dynamodbav:"location,omitempty"`
}
