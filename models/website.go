package models

import "time"

type Website struct {
	ID           int64          `json:"id" bson:"id"`
	UserID       int64          `json:"userId" bson:"userId"`
	ProfileID    int64          `json:"profileId" bson:"profileId"`
	TemplateID   string         `json:"templateId" bson:"templateId"`
	Subdomain    *string        `json:"subdomain" bson:"subdomain,omitempty"`
	CustomDomain *string        `json:"customDomain" bson:"customDomain,omitempty"`
	Settings     map[string]any `json:"settings" bson:"settings"`
	Published    bool           `json:"published" bson:"published"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type InsertWebsite struct {
	UserID       int64
	ProfileID    int64
	TemplateID   string
	Subdomain    *string
	CustomDomain *string
	Settings     map[string]any
}

type WebsiteUpdate struct {
	TemplateID   *string
	Subdomain    *string
	CustomDomain *string
	Settings     map[string]any
	Published    *bool
}
