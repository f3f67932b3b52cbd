package models

import "time"

type Profile struct {
	ID           int64        `json:"id" bson:"id"`
	UserID       *int64       `json:"userId" bson:"userId,omitempty"`
	LinkedinURL  string       `json:"linkedinUrl" bson:"linkedinUrl"`
	OriginalData *ProfileData `json:"originalData" bson:"originalData,omitempty"`
	EnhancedData *ProfileData `json:"enhancedData" bson:"enhancedData,omitempty"`
	LastUpdated  time.Time    `json:"lastUpdated" bson:"lastUpdated"`
}

type InsertProfile struct {
	LinkedinURL string
	UserID      *int64
}

// ProfileUpdate carries a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	UserID       *int64
	LinkedinURL  *string
	OriginalData *ProfileData
	EnhancedData *ProfileData
}

// ProfileData is the typed shape of an imported professional profile.
// The original and enhanced variants share it.
type ProfileData struct {
	FirstName         string          `json:"firstName" bson:"firstName"`
	LastName          string          `json:"lastName" bson:"lastName"`
	Headline          string          `json:"headline,omitempty" bson:"headline,omitempty"`
	Summary           string          `json:"summary,omitempty" bson:"summary,omitempty"`
	ProfilePictureURL string          `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	Location          *Location       `json:"location,omitempty" bson:"location,omitempty"`
	Experiences       []Experience    `json:"experiences,omitempty" bson:"experiences,omitempty"`
	Education         []Education     `json:"education,omitempty" bson:"education,omitempty"`
	Skills            []string        `json:"skills,omitempty" bson:"skills,omitempty"`
	Certifications    []Certification `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Languages         []Language      `json:"languages,omitempty" bson:"languages,omitempty"`
	Projects          []Project       `json:"projects,omitempty" bson:"projects,omitempty"`
}

type Location struct {
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
}

type Experience struct {
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty" bson:"current,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
}

type Education struct {
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree,omitempty" bson:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" bson:"fieldOfStudy,omitempty"`
	StartDate    string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

type Certification struct {
	Name      string `json:"name" bson:"name"`
	Authority string `json:"authority,omitempty" bson:"authority,omitempty"`
	Date      string `json:"date,omitempty" bson:"date,omitempty"`
}

type Language struct {
	Language    string `json:"language" bson:"language"`
	Proficiency string `json:"proficiency,omitempty" bson:"proficiency,omitempty"`
}

type Project struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
	StartDate   string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" bson:"endDate,omitempty"`
}
