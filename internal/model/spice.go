package model

// Category is a product category of the external store.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a store product as returned by the catalog collaborator.
type Product struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	Price            string   `json:"price"`
	Images           []string `json:"images"`
	Permalink        string   `json:"permalink"`
}

// SpiceRecommendation is a store product proposed for a recipe or ingredient.
type SpiceRecommendation struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	ImageURL     string `json:"image_url,omitempty"`
	ProductURL   string `json:"product_url"`
	AddToCartURL string `json:"add_to_cart_url"`
}
