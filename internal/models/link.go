package models

import "time"

// Link représente un lien raccourci via ce front-end, conservé dans l'historique local.
type Link struct {
	ID        uint      `gorm:"primaryKey"`
	ShortCode string    `gorm:"index;size:64;not null"`
	ShortURL  string    `gorm:"not null"`
	LongURL   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ShortenEvent represents a successful shorten call intended to be passed through channels.
// This lightweight struct is consumed by the history workers, which turn it into a Link row.
type ShortenEvent struct {
	ShortCode string    // Code returned by the shortening service
	ShortURL  string    // Short URL as displayed to the user
	LongURL   string    // The original long URL
	Timestamp time.Time // When the shorten call succeeded
}
