package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessType string

const (
	BusinessTypeVet       BusinessType = "Vet"
	BusinessTypeGroomer   BusinessType = "Groomer"
	BusinessTypePetSitter BusinessType = "Pet Sitter"
	BusinessTypeDogPark   BusinessType = "Dog Park"
)

type Business struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"          json:"id"`
	Name        string       `gorm:"size:100;not null;index"       json:"name"`
	Type        BusinessType `gorm:"size:32;not null"              json:"type"`
	Address     string       `gorm:"not null"                      json:"address"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	ContactInfo string       `json:"contact_info,omitempty"`
	Description string       `gorm:"type:text"                     json:"description,omitempty"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index"      json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (b *Business) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Business) ToActivity() map[string]string {
	return map[string]string{
		"id":   b.ID.String(),
		"name": b.Name,
		"type": string(b.Type),
	}
}

type BusinessCreateBody struct {
	Name        string       `json:"name"         validate:"required,min=1,max=100"`
	Type        BusinessType `json:"type"         validate:"required,oneof=Vet Groomer 'Pet Sitter' 'Dog Park'"`
	Address     string       `json:"address"      validate:"required"`
	Latitude    *float64     `json:"latitude"     validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64     `json:"longitude"    validate:"omitempty,gte=-180,lte=180"`
	ContactInfo string       `json:"contact_info" validate:"omitempty,max=255"`
	Description string       `json:"description"  validate:"omitempty,max=2000"`
}

type BusinessUpdateBody struct {
	Name        string       `json:"name"         validate:"omitempty,min=1,max=100"`
	Type        BusinessType `json:"type"         validate:"omitempty,oneof=Vet Groomer 'Pet Sitter' 'Dog Park'"`
	Address     string       `json:"address"      validate:"omitempty"`
	Latitude    *float64     `json:"latitude"     validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64     `json:"longitude"    validate:"omitempty,gte=-180,lte=180"`
	ContactInfo string       `json:"contact_info" validate:"omitempty,max=255"`
	Description string       `json:"description"  validate:"omitempty,max=2000"`
}

// BusinessListQueryParams carries the disambiguating parameters of a cached
// business list read.
type BusinessListQueryParams struct {
	Search string `form:"search" validate:"omitempty,max=100"`
	Page   int    `form:"page"   validate:"omitempty,gte=1"`
	Limit  int    `form:"limit"  validate:"omitempty,gte=1,lte=100"`
}

type BusinessListResponse struct {
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Businesses []Business `json:"businesses"`
}

type BusinessResponse struct {
	Business Business `json:"business"`
}
