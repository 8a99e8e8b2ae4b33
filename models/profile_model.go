package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/caas"
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'client'" json:"role"`

	ReferralCode   *string `gorm:"size:10;unique" json:"referral_code"`
	ReferredByCode *string `gorm:"size:10" json:"referred_by_code"`

	IdentityVerified bool       `gorm:"default:false" json:"identity_verified"`
	PremiumUntil     *time.Time `json:"premium_until"`

	Headline  *string `gorm:"size:255" json:"headline"`
	Bio       *string `gorm:"type:text" json:"bio"`
	AvatarURL *string `gorm:"size:255" json:"avatar_url"`
	TimeZone  *string `gorm:"size:100" json:"time_zone"`
	Country   *string `gorm:"size:100" json:"country"`

	AvgRating        float32        `gorm:"default:0" json:"avg_rating"`
	CredibilityScore float64        `gorm:"type:numeric(5,2);default:0" json:"credibility_score"`
	ScoreBreakdown   caas.Breakdown `gorm:"embedded;embeddedPrefix:breakdown_" json:"score_breakdown"`

	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscribed reports whether the premium subscription is active at the
// given instant. Bonus score tiers only apply while it is.
func (p *Profile) Subscribed(now time.Time) bool {
	return p.PremiumUntil != nil && p.PremiumUntil.After(now)
}
