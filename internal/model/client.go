package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is CRM reference data; it does not participate in pricing math.
type Client struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `json:"name"`
	History       string        `json:"history"`
	Preferences   string        `json:"preferences"`
	NPS           float64       `gorm:"column:nps" json:"nps"`
	RetentionRate float64       `json:"retention_rate"`
	Interactions  []Interaction `gorm:"foreignKey:ClientID" json:"interactions,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Interaction struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Date     time.Time `json:"date"`
	Kind     string    `json:"kind"`
	Outcome  string    `json:"outcome"`
}
