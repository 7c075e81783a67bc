package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Category struct {
	ID        gocql.UUID `json:"id" db:"category_id"`
	Name      string     `json:"name" db:"name"`
	Image     string     `json:"image,omitempty" db:"image"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
