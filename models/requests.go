package models

type WaitlistRequest struct {
	Email       string `json:"email" binding:"required,email"`
	LinkedinURL string `json:"linkedinUrl" binding:"omitempty,url"`
	Profession  string `json:"profession" binding:"required"`
}

type CreateProfileRequest struct {
	LinkedinURL string `json:"linkedinUrl" binding:"required,url"`
	UserID      *int64 `json:"userId"`
}

type SettingsRequest struct {
	Tone                  *string `json:"tone"`
	Focus                 *string `json:"focus"`
	Length                *string `json:"length"`
	HighlightAchievements *bool   `json:"highlightAchievements"`
	EmphasizeSkills       *bool   `json:"emphasizeSkills"`
	IncludeMetrics        *bool   `json:"includeMetrics"`
}

type CreateWebsiteRequest struct {
	ProfileID    int64          `json:"profileId" binding:"required"`
	TemplateID   string         `json:"templateId" binding:"required"`
	Subdomain    *string        `json:"subdomain"`
	CustomDomain *string        `json:"customDomain"`
	Settings     map[string]any `json:"settings"`
}

type UpdateWebsiteRequest struct {
	TemplateID   *string        `json:"templateId"`
	Subdomain    *string        `json:"subdomain"`
	CustomDomain *string        `json:"customDomain"`
	Settings     map[string]any `json:"settings"`
	Published    *bool          `json:"published"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
