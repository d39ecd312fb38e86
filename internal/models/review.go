package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"     json:"id"`
	Rating     int        `gorm:"not null"                 json:"rating"`
	Comment    string     `gorm:"type:text;not null"       json:"comment"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	ServiceID  *uuid.UUID `gorm:"type:uuid"                json:"service_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReviewCreateBody struct {
	BusinessID uuid.UUID  `json:"business_id" validate:"required"`
	Rating     int        `json:"rating"      validate:"required,gte=1,lte=5"`
	Comment    string     `json:"comment"     validate:"required,min=1,max=500"`
	ServiceID  *uuid.UUID `json:"service_id"`
}

type ReviewListResponse struct {
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Reviews []Review `json:"reviews"`
}

type ReviewResponse struct {
	Review Review `json:"review"`
}
