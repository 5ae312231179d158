package models

import "time"

// Account is a registered artist identity.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"` // stored lowercase
	Password     string    `json:"-" gorm:"not null"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	Twitter      string    `json:"twitter"`
	Facebook     string    `json:"facebook"`
	IsArtist     bool      `json:"is_artist" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the sanitized account shape returned to clients. The password
// hash never leaves the store through this struct.
type Profile struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	Twitter      string    `json:"twitter"`
	Facebook     string    `json:"facebook"`
	IsArtist     bool      `json:"is_artist"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile strips the credentials off an account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Bio:          a.Bio,
		ProfileImage: a.ProfileImage,
		Website:      a.Website,
		Instagram:    a.Instagram,
		Twitter:      a.Twitter,
		Facebook:     a.Facebook,
		IsArtist:     a.IsArtist,
		CreatedAt:    a.CreatedAt,
	}
}

// OwnerSummary is the slim owner join attached to gallery listings.
type OwnerSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// OwnerProfile is the public slice of an account shown on an artwork page.
type OwnerProfile struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image"`
	Bio          string `json:"bio"`
	Website      string `json:"website"`
	Instagram    string `json:"instagram"`
	Twitter      string `json:"twitter"`
	Facebook     string `json:"facebook"`
}

func (a *Account) OwnerSummary() OwnerSummary {
	return OwnerSummary{ID: a.ID, Name: a.Name, ProfileImage: a.ProfileImage}
}

func (a *Account) OwnerProfile() OwnerProfile {
	return OwnerProfile{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
		Bio:          a.Bio,
		Website:      a.Website,
		Instagram:    a.Instagram,
		Twitter:      a.Twitter,
		Facebook:     a.Facebook,
	}
}
