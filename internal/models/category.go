package models

// Category groups catalog products for browsing.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"isActive"`
}
