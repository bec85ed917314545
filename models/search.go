package models

// PriceRange bounds a package price filter, inclusive on both ends.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SearchFilters are the optional criteria of a catalog search. All supplied
// criteria are combined conjunctively; a zero-value filter matches the full
// catalog.
type SearchFilters struct {
	Query     string      `json:"query,omitempty"`    // substring on business name or description
	Location  string      `json:"location,omitempty"` // substring on location
	Category  Category    `json:"category,omitempty"`
	Date      string      `json:"date,omitempty"` // YYYY-MM-DD, must be free in the ledger
	Price     *PriceRange `json:"price,omitempty"`
	MinRating float64     `json:"minRating,omitempty"`
}
