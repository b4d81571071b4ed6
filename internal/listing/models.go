package listing

import "time"

// Listing is one product for sale. Classification fields are opaque
// identifiers owned by the catalog service; this core passes them through
// unvalidated. PriceCurrent starts equal to PriceMin and nothing in this
// core moves it afterwards.
type Listing struct {
	ID            string    `json:"id"`
	SellerID      string    `json:"seller_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	BrandID       string    `json:"brand_id"`
	CategoryID    string    `json:"category_id"`
	SubcategoryID string    `json:"subcategory_id"`
	ItemID        string    `json:"item_id"`
	SizeID        string    `json:"size_id"`
	ColorID       string    `json:"color_id"`
	Gender        string    `json:"gender"`
	Condition     string    `json:"condition"`
	PriceMin      int64     `json:"price_min"`
	PriceCurrent  int64     `json:"price_current"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateInput carries the listing fields a seller submits.
type CreateInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	BrandID       string `json:"brand_id"`
	CategoryID    string `json:"category_id"`
	SubcategoryID string `json:"subcategory_id"`
	ItemID        string `json:"item_id"`
	SizeID        string `json:"size_id"`
	ColorID       string `json:"color_id"`
	Gender        string `json:"gender"`
	Condition     string `json:"condition"`
	PriceMin      int64  `json:"price_min"`
}
