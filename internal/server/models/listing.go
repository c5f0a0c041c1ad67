package models

import "time"

// Listing is a single classified ad. The owner (UserID) is set once at
// creation and never reassigned; there is no update or delete path.
type Listing struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	Condition        string    `json:"condition"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	LocationProvince string    `json:"location_province"`
	LocationRegency  string    `json:"location_regency,omitempty"`
	ContactInfo      string    `json:"contact_info,omitempty"`
	Images           []string  `json:"images"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListingDetail is a Listing enriched with the seller's display name,
// resolved by a secondary profile lookup.
type ListingDetail struct {
	Listing
	SellerName string `json:"seller_name"`
}
