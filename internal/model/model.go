package model

import (
	"time"
)

// Model holds the columns shared by every table.
type Model struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}
