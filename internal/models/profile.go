package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents a registered player. Rows originate from the identity
// provider; the pipeline only reads them to validate upload ownership.
type Profile struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"`
	Country   string    `json:"country"`
	Approved  bool      `json:"approved" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the row id on insert
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
