package models

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Participants []*Profile `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`
	Messages     []Message  `json:"messages,omitempty"`
}
