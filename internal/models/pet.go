package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name      string    `gorm:"size:100;not null"        json:"name"`
	Type      string    `gorm:"size:50;not null"         json:"type"`
	Age       *int      `json:"age,omitempty"`
	Breed     string    `gorm:"size:100"                 json:"breed,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Pet) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PetCreateBody struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Type  string `json:"type"  validate:"required,min=1,max=50"`
	Age   *int   `json:"age"   validate:"omitempty,gte=0,lte=100"`
	Breed string `json:"breed" validate:"omitempty,max=100"`
}

type PetUpdateBody struct {
	Name  string `json:"name"  validate:"omitempty,min=1,max=100"`
	Type  string `json:"type"  validate:"omitempty,min=1,max=50"`
	Age   *int   `json:"age"   validate:"omitempty,gte=0,lte=100"`
	Breed string `json:"breed" validate:"omitempty,max=100"`
}

type PetListResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pets  []Pet `json:"pets"`
}

type PetResponse struct {
	Pet Pet `json:"pet"`
}
