package database

import (
	"context"
	"errors"

	"linkfolio/backend/models"
)

var (
	// ErrNotFound is returned by updates targeting an absent id. Reads by
	// id report a missing row as (nil, nil), never as an error.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("duplicate record")
)

// Storage is the persistence contract shared by every backend. All three
// implementations behave identically from a caller's point of view.
type Storage interface {
	CreateUser(ctx context.Context, u models.InsertUser) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateWaitlistEntry(ctx context.Context, e models.InsertWaitlistEntry) (*models.WaitlistEntry, error)
	GetWaitlistEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	ListWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error)

	CreateProfile(ctx context.Context, p models.InsertProfile) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error)

	CreateEnhancementSettings(ctx context.Context, s models.InsertEnhancementSettings) (*models.EnhancementSettings, error)
	GetEnhancementSettings(ctx context.Context, id int64) (*models.EnhancementSettings, error)
	GetEnhancementSettingsByProfile(ctx context.Context, profileID int64) (*models.EnhancementSettings, error)
	UpdateEnhancementSettings(ctx context.Context, id int64, upd models.SettingsUpdate) (*models.EnhancementSettings, error)

	CreateWebsite(ctx context.Context, w models.InsertWebsite) (*models.Website, error)
	GetWebsite(ctx context.Context, id int64) (*models.Website, error)
	GetWebsitesByUserID(ctx context.Context, userID int64) ([]models.Website, error)
	GetWebsiteBySubdomain(ctx context.Context, subdomain string) (*models.Website, error)
	GetWebsiteByCustomDomain(ctx context.Context, domain string) (*models.Website, error)
	UpdateWebsite(ctx context.Context, id int64, upd models.WebsiteUpdate) (*models.Website, error)

	Close(ctx context.Context) error
}
