package database

import (
	"context"
	"sync"
	"time"

	"linkfolio/backend/models"
)

// MemStorage keeps everything in process-lifetime maps with per-kind
// auto-increment counters. Counters reset on restart; nothing persists.
// A single mutex guards all tables since handlers run on separate
// goroutines.
type MemStorage struct {
	mu sync.Mutex

	users    map[int64]models.User
	waitlist map[int64]models.WaitlistEntry
	profiles map[int64]models.Profile
	settings map[int64]models.EnhancementSettings
	websites map[int64]models.Website

	userID     int64
	waitlistID int64
	profileID  int64
	settingsID int64
	websiteID  int64
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:    make(map[int64]models.User),
		waitlist: make(map[int64]models.WaitlistEntry),
		profiles: make(map[int64]models.Profile),
		settings: make(map[int64]models.EnhancementSettings),
		websites: make(map[int64]models.Website),
	}
}

// User methods

func (m *MemStorage) CreateUser(ctx context.Context, u models.InsertUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID++
	user := models.User{
		ID:        m.userID,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: time.Now(),
	}
	m.users[user.ID] = user
	return &user, nil
}

func (m *MemStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *MemStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// Waitlist methods

func (m *MemStorage) CreateWaitlistEntry(ctx context.Context, e models.InsertWaitlistEntry) (*models.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waitlistID++
	entry := models.WaitlistEntry{
		ID:          m.waitlistID,
		Email:       e.Email,
		LinkedinURL: e.LinkedinURL,
		Profession:  e.Profession,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	m.waitlist[entry.ID] = entry
	return &entry, nil
}

func (m *MemStorage) GetWaitlistEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.waitlist {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) ListWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WaitlistEntry, 0, len(m.waitlist))
	for id := int64(1); id <= m.waitlistID; id++ {
		if e, ok := m.waitlist[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Profile methods

func (m *MemStorage) CreateProfile(ctx context.Context, p models.InsertProfile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileID++
	profile := models.Profile{
		ID:          m.profileID,
		UserID:      p.UserID,
		LinkedinURL: p.LinkedinURL,
		LastUpdated: time.Now(),
	}
	m.profiles[profile.ID] = profile
	return &profile, nil
}

func (m *MemStorage) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *MemStorage) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID != nil && *p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.UserID != nil {
		p.UserID = upd.UserID
	}
	if upd.LinkedinURL != nil {
		p.LinkedinURL = *upd.LinkedinURL
	}
	if upd.OriginalData != nil {
		p.OriginalData = upd.OriginalData
	}
	if upd.EnhancedData != nil {
		p.EnhancedData = upd.EnhancedData
	}
	p.LastUpdated = time.Now()
	m.profiles[id] = p
	return &p, nil
}

// Enhancement settings methods

func (m *MemStorage) CreateEnhancementSettings(ctx context.Context, s models.InsertEnhancementSettings) (*models.EnhancementSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settingsID++
	now := time.Now()
	settings := models.EnhancementSettings{
		ID:                    m.settingsID,
		UserID:                s.UserID,
		ProfileID:             s.ProfileID,
		Tone:                  strOr(s.Tone, models.ToneProfessional),
		Focus:                 strOr(s.Focus, models.FocusBalanced),
		Length:                strOr(s.Length, models.LengthDetailed),
		HighlightAchievements: boolOr(s.HighlightAchievements, true),
		EmphasizeSkills:       boolOr(s.EmphasizeSkills, true),
		IncludeMetrics:        boolOr(s.IncludeMetrics, false),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	m.settings[settings.ID] = settings
	return &settings, nil
}

func (m *MemStorage) GetEnhancementSettings(ctx context.Context, id int64) (*models.EnhancementSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.settings[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *MemStorage) GetEnhancementSettingsByProfile(ctx context.Context, profileID int64) (*models.EnhancementSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.settings {
		if s.ProfileID == profileID {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) UpdateEnhancementSettings(ctx context.Context, id int64, upd models.SettingsUpdate) (*models.EnhancementSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Tone != nil {
		s.Tone = *upd.Tone
	}
	if upd.Focus != nil {
		s.Focus = *upd.Focus
	}
	if upd.Length != nil {
		s.Length = *upd.Length
	}
	if upd.HighlightAchievements != nil {
		s.HighlightAchievements = *upd.HighlightAchievements
	}
	if upd.EmphasizeSkills != nil {
		s.EmphasizeSkills = *upd.EmphasizeSkills
	}
	if upd.IncludeMetrics != nil {
		s.IncludeMetrics = *upd.IncludeMetrics
	}
	s.UpdatedAt = time.Now()
	m.settings[id] = s
	return &s, nil
}

// Website methods

func (m *MemStorage) CreateWebsite(ctx context.Context, w models.InsertWebsite) (*models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.websiteID++
	now := time.Now()
	site := models.Website{
		ID:           m.websiteID,
		UserID:       w.UserID,
		ProfileID:    w.ProfileID,
		TemplateID:   w.TemplateID,
		Subdomain:    w.Subdomain,
		CustomDomain: w.CustomDomain,
		Settings:     w.Settings,
		Published:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if site.Settings == nil {
		site.Settings = map[string]any{}
	}
	m.websites[site.ID] = site
	return &site, nil
}

func (m *MemStorage) GetWebsite(ctx context.Context, id int64) (*models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.websites[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (m *MemStorage) GetWebsitesByUserID(ctx context.Context, userID int64) ([]models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Website{}
	for id := int64(1); id <= m.websiteID; id++ {
		if w, ok := m.websites[id]; ok && w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *MemStorage) GetWebsiteBySubdomain(ctx context.Context, subdomain string) (*models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.websites {
		if w.Subdomain != nil && *w.Subdomain == subdomain {
			return &w, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) GetWebsiteByCustomDomain(ctx context.Context, domain string) (*models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.websites {
		if w.CustomDomain != nil && *w.CustomDomain == domain {
			return &w, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) UpdateWebsite(ctx context.Context, id int64, upd models.WebsiteUpdate) (*models.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.TemplateID != nil {
		w.TemplateID = *upd.TemplateID
	}
	if upd.Subdomain != nil {
		w.Subdomain = upd.Subdomain
	}
	if upd.CustomDomain != nil {
		w.CustomDomain = upd.CustomDomain
	}
	if upd.Settings != nil {
		w.Settings = upd.Settings
	}
	if upd.Published != nil {
		w.Published = *upd.Published
	}
	w.UpdatedAt = time.Now()
	m.websites[id] = w
	return &w, nil
}

func (m *MemStorage) Close(ctx context.Context) error { return nil }

func strOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
