package entity

// Availability values a product can carry.
const (
	AvailabilityInStock  = "in_stock"
	AvailabilityPreorder = "preorder"
)

// Product is a single storefront position, keyed by SKU.
type Product struct {
	SKU          string `json:"sku"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	Category     string `json:"category"`
	IsActive     bool   `json:"is_active"`
	Availability string `json:"availability"`
	ImageURL     string `json:"image_url"`
}

// ValidAvailability reports whether s is an allowed availability value.
func ValidAvailability(s string) bool {
	return s == AvailabilityInStock || s == AvailabilityPreorder
}

// ProductPatch carries the fields of an upsert request. Nil means the field
// was absent from the request and must not be touched on update.
type ProductPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Price        *int64  `json:"price"`
	Currency     *string `json:"currency"`
	Category     *string `json:"category"`
	IsActive     *bool   `json:"is_active"`
	Availability *string `json:"availability"`
	ImageURL     *string `json:"image_url"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Query      string // matches SKU or title, substring
	Category   string
	ActiveOnly bool
}
