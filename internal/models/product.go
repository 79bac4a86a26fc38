package models

import (
	"encoding/json"
	"time"
)

// Rating holds the aggregate review score for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a single item in the storefront catalog.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`

	// JSON string field for DB storage
	RatingJSON string `json:"-"`

	Rating Rating `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
}

// PrepareForSave marshals the rating into its JSON string for DB storage.
func (p *Product) PrepareForSave() {
	ratingBytes, _ := json.Marshal(p.Rating)
	p.RatingJSON = string(ratingBytes)
}

// PrepareForAPI unmarshals the JSON string field for API responses.
func (p *Product) PrepareForAPI() {
	if p.RatingJSON != "" {
		json.Unmarshal([]byte(p.RatingJSON), &p.Rating)
	}
}
