package models

import "time"

// Artwork categories.
const (
	CategoryPainting    = "Painting"
	CategoryDigitalArt  = "Digital Art"
	CategoryPhotography = "Photography"
	CategorySculpture   = "Sculpture"
	CategoryMixedMedia  = "Mixed Media"
	CategoryOther       = "Other"
)

var categories = map[string]bool{
	CategoryPainting:    true,
	CategoryDigitalArt:  true,
	CategoryPhotography: true,
	CategorySculpture:   true,
	CategoryMixedMedia:  true,
	CategoryOther:       true,
}

// ValidCategory reports whether c is one of the known artwork categories.
func ValidCategory(c string) bool {
	return categories[c]
}

// Artwork is a single portfolio item owned by one account. Fields are
// immutable after creation except for the view counter; the only other
// transition is deletion.
type Artwork struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Medium      string    `json:"medium"`
	Dimensions  string    `json:"dimensions"`
	Price       float64   `json:"price" gorm:"default:0"`
	IsForSale   bool      `json:"is_for_sale" gorm:"default:false"`
	AccountID   uint      `json:"account_id" gorm:"not null;index"`
	Account     Account   `json:"-" gorm:"foreignKey:AccountID"`
	Likes       []Account `json:"-" gorm:"many2many:artwork_likes"`
	Views       int64     `json:"views" gorm:"default:0"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
}

// GalleryItem is an artwork with its owner summary joined in, as served by
// the public gallery listing.
type GalleryItem struct {
	Artwork
	Owner OwnerSummary `json:"owner"`
}

// ArtworkDetail is an artwork with the owner's public profile joined in.
type ArtworkDetail struct {
	Artwork
	Owner OwnerProfile `json:"owner"`
}
