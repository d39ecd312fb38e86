package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an offering listed by a business (grooming, walking, boarding...).
type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name       string    `gorm:"size:100;not null"        json:"name"`
	Price      *float64  `json:"price,omitempty"`
	Duration   *int      `json:"duration,omitempty"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ServiceCreateBody struct {
	BusinessID uuid.UUID `json:"business_id" validate:"required"`
	Name       string    `json:"name"        validate:"required,min=1,max=100"`
	Price      *float64  `json:"price"       validate:"omitempty,gte=0"`
	Duration   *int      `json:"duration"    validate:"omitempty,gte=1"`
}

type ServiceListResponse struct {
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Services []Service `json:"services"`
}

type ServiceResponse struct {
	Service Service `json:"service"`
}

// PageQueryParams is the shared pagination shape of nested list reads.
type PageQueryParams struct {
	Page  int `form:"page"  validate:"omitempty,gte=1"`
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}
