package models

import "time"

// Enumerations for the enhancement dimensions. Validated wherever a
// client can set them.
const (
	ToneProfessional   = "professional"
	ToneConversational = "conversational"
	ToneEnthusiastic   = "enthusiastic"

	FocusTechnical  = "technical"
	FocusLeadership = "leadership"
	FocusCreative   = "creative"
	FocusBalanced   = "balanced"

	LengthConcise       = "concise"
	LengthDetailed      = "detailed"
	LengthComprehensive = "comprehensive"
)

var (
	Tones   = []string{ToneProfessional, ToneConversational, ToneEnthusiastic}
	Focuses = []string{FocusTechnical, FocusLeadership, FocusCreative, FocusBalanced}
	Lengths = []string{LengthConcise, LengthDetailed, LengthComprehensive}
)

func ValidTone(v string) bool   { return contains(Tones, v) }
func ValidFocus(v string) bool  { return contains(Focuses, v) }
func ValidLength(v string) bool { return contains(Lengths, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type EnhancementSettings struct {
	ID                    int64     `json:"id" bson:"id"`
	UserID                int64     `json:"userId" bson:"userId"`
	ProfileID             int64     `json:"profileId" bson:"profileId"`
	Tone                  string    `json:"tone" bson:"tone"`
	Focus                 string    `json:"focus" bson:"focus"`
	Length                string    `json:"length" bson:"length"`
	HighlightAchievements bool      `json:"highlightAchievements" bson:"highlightAchievements"`
	EmphasizeSkills       bool      `json:"emphasizeSkills" bson:"emphasizeSkills"`
	IncludeMetrics        bool      `json:"includeMetrics" bson:"includeMetrics"`
	CreatedAt             time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updatedAt"`
}

// InsertEnhancementSettings applies the documented defaults for any nil
// field: professional / balanced / detailed, highlight and emphasize on,
// metrics off.
type InsertEnhancementSettings struct {
	UserID                int64
	ProfileID             int64
	Tone                  *string
	Focus                 *string
	Length                *string
	HighlightAchievements *bool
	EmphasizeSkills       *bool
	IncludeMetrics        *bool
}

type SettingsUpdate struct {
	Tone                  *string
	Focus                 *string
	Length                *string
	HighlightAchievements *bool
	EmphasizeSkills       *bool
	IncludeMetrics        *bool
}
