package product

import "time"

// Product belongs to the admin who created it; only that owner may change
// or delete it.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url"`
	Description *string   `json:"description"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListParams narrows and pages a catalog listing.
type ListParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListResult carries one page of products plus the data the filter UI needs.
type ListResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Categories []string  `json:"categories"`
}
