package models

// WaitlistEntry keeps createdAt as an RFC3339 string, matching the wire
// format the landing page consumes.
type WaitlistEntry struct {
	ID          int64   `json:"id" bson:"id"`
	Email       string  `json:"email" bson:"email"`
	LinkedinURL *string `json:"linkedinUrl" bson:"linkedinUrl,omitempty"`
	Profession  *string `json:"profession" bson:"profession,omitempty"`
	CreatedAt   string  `json:"createdAt" bson:"createdAt"`
}

type InsertWaitlistEntry struct {
	Email       string
	LinkedinURL *string
	Profession  *string
}
