package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkfolio/backend/models"
)

// PGStorage backs the Storage contract with Postgres. Profile data and
// website settings live in JSONB columns; identifiers come from
// BIGSERIAL sequences, so they line up with the memory store's counters.
type PGStorage struct {
	pool *pgxpool.Pool
}

func NewPGStorage(ctx context.Context, databaseURL string) (*PGStorage, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db parse config: %w", err)
	}
	// Prefer simple protocol for broader compatibility (e.g., proxies).
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	s := &PGStorage{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStorage) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			email TEXT,
			name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS waitlist_entries (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			linkedin_url TEXT,
			profession TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT,
			linkedin_url TEXT NOT NULL,
			original_data JSONB,
			enhanced_data JSONB,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS enhancement_settings (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			profile_id BIGINT NOT NULL,
			tone TEXT NOT NULL,
			focus TEXT NOT NULL,
			length TEXT NOT NULL,
			highlight_achievements BOOLEAN NOT NULL,
			emphasize_skills BOOLEAN NOT NULL,
			include_metrics BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS enhancement_settings_profile_id_idx ON enhancement_settings(profile_id)`,
		`CREATE TABLE IF NOT EXISTS websites (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			profile_id BIGINT NOT NULL,
			template_id TEXT NOT NULL,
			subdomain TEXT UNIQUE,
			custom_domain TEXT UNIQUE,
			settings JSONB NOT NULL DEFAULT '{}'::jsonb,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema ensure: %w", err)
		}
	}
	return nil
}

func wrapPGErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

// User methods

func (s *PGStorage) CreateUser(ctx context.Context, u models.InsertUser) (*models.User, error) {
	user := models.User{Username: u.Username, Password: u.Password, Email: u.Email, Name: u.Name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users(username, password, email, name) VALUES($1,$2,$3,$4) RETURNING id, created_at`,
		u.Username, u.Password, u.Email, u.Name).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, wrapPGErr(err)
	}
	return &user, nil
}

func (s *PGStorage) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PGStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password, email, name, created_at FROM users WHERE id=$1`, id))
}

func (s *PGStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password, email, name, created_at FROM users WHERE username=$1`, username))
}

// Waitlist methods

func (s *PGStorage) CreateWaitlistEntry(ctx context.Context, e models.InsertWaitlistEntry) (*models.WaitlistEntry, error) {
	entry := models.WaitlistEntry{
		Email:       e.Email,
		LinkedinURL: e.LinkedinURL,
		Profession:  e.Profession,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO waitlist_entries(email, linkedin_url, profession, created_at) VALUES($1,$2,$3,$4) RETURNING id`,
		e.Email, e.LinkedinURL, e.Profession, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return nil, wrapPGErr(err)
	}
	return &entry, nil
}

func (s *PGStorage) GetWaitlistEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var e models.WaitlistEntry
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, linkedin_url, profession, created_at FROM waitlist_entries WHERE email=$1`, email).
		Scan(&e.ID, &e.Email, &e.LinkedinURL, &e.Profession, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PGStorage) ListWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, linkedin_url, profession, created_at FROM waitlist_entries ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.WaitlistEntry{}
	for rows.Next() {
		var e models.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.LinkedinURL, &e.Profession, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Profile methods

func (s *PGStorage) CreateProfile(ctx context.Context, p models.InsertProfile) (*models.Profile, error) {
	profile := models.Profile{LinkedinURL: p.LinkedinURL, UserID: p.UserID}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO profiles(user_id, linkedin_url) VALUES($1,$2) RETURNING id, last_updated`,
		p.UserID, p.LinkedinURL).Scan(&profile.ID, &profile.LastUpdated)
	if err != nil {
		return nil, wrapPGErr(err)
	}
	return &profile, nil
}

func (s *PGStorage) scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var orig, enh []byte
	err := row.Scan(&p.ID, &p.UserID, &p.LinkedinURL, &orig, &enh, &p.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(orig) > 0 {
		p.OriginalData = &models.ProfileData{}
		if err := json.Unmarshal(orig, p.OriginalData); err != nil {
			return nil, fmt.Errorf("decode original_data: %w", err)
		}
	}
	if len(enh) > 0 {
		p.EnhancedData = &models.ProfileData{}
		if err := json.Unmarshal(enh, p.EnhancedData); err != nil {
			return nil, fmt.Errorf("decode enhanced_data: %w", err)
		}
	}
	return &p, nil
}

const profileCols = `id, user_id, linkedin_url, original_data, enhanced_data, last_updated`

func (s *PGStorage) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return s.scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE id=$1`, id))
}

func (s *PGStorage) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE user_id=$1`, userID))
}

func (s *PGStorage) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	set, args := newSetClause()
	if upd.UserID != nil {
		set.add("user_id", *upd.UserID, &args)
	}
	if upd.LinkedinURL != nil {
		set.add("linkedin_url", *upd.LinkedinURL, &args)
	}
	if upd.OriginalData != nil {
		b, err := json.Marshal(upd.OriginalData)
		if err != nil {
			return nil, err
		}
		set.add("original_data", string(b), &args)
	}
	if upd.EnhancedData != nil {
		b, err := json.Marshal(upd.EnhancedData)
		if err != nil {
			return nil, err
		}
		set.add("enhanced_data", string(b), &args)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE profiles SET %s last_updated=now() WHERE id=$%d RETURNING `+profileCols,
		set.joined(), len(args))
	p, err := s.scanProfile(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapPGErr(err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Enhancement settings methods

const settingsCols = `id, user_id, profile_id, tone, focus, length, highlight_achievements, emphasize_skills, include_metrics, created_at, updated_at`

func (s *PGStorage) scanSettings(row pgx.Row) (*models.EnhancementSettings, error) {
	var es models.EnhancementSettings
	err := row.Scan(&es.ID, &es.UserID, &es.ProfileID, &es.Tone, &es.Focus, &es.Length,
		&es.HighlightAchievements, &es.EmphasizeSkills, &es.IncludeMetrics, &es.CreatedAt, &es.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &es, nil
}

func (s *PGStorage) CreateEnhancementSettings(ctx context.Context, in models.InsertEnhancementSettings) (*models.EnhancementSettings, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO enhancement_settings(user_id, profile_id, tone, focus, length, highlight_achievements, emphasize_skills, include_metrics)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING `+settingsCols,
		in.UserID, in.ProfileID,
		strOr(in.Tone, models.ToneProfessional),
		strOr(in.Focus, models.FocusBalanced),
		strOr(in.Length, models.LengthDetailed),
		boolOr(in.HighlightAchievements, true),
		boolOr(in.EmphasizeSkills, true),
		boolOr(in.IncludeMetrics, false))
	es, err := s.scanSettings(row)
	if err != nil {
		return nil, wrapPGErr(err)
	}
	return es, nil
}

func (s *PGStorage) GetEnhancementSettings(ctx context.Context, id int64) (*models.EnhancementSettings, error) {
	return s.scanSettings(s.pool.QueryRow(ctx,
		`SELECT `+settingsCols+` FROM enhancement_settings WHERE id=$1`, id))
}

func (s *PGStorage) GetEnhancementSettingsByProfile(ctx context.Context, profileID int64) (*models.EnhancementSettings, error) {
	return s.scanSettings(s.pool.QueryRow(ctx,
		`SELECT `+settingsCols+` FROM enhancement_settings WHERE profile_id=$1 ORDER BY id ASC LIMIT 1`, profileID))
}

func (s *PGStorage) UpdateEnhancementSettings(ctx context.Context, id int64, upd models.SettingsUpdate) (*models.EnhancementSettings, error) {
	set, args := newSetClause()
	if upd.Tone != nil {
		set.add("tone", *upd.Tone, &args)
	}
	if upd.Focus != nil {
		set.add("focus", *upd.Focus, &args)
	}
	if upd.Length != nil {
		set.add("length", *upd.Length, &args)
	}
	if upd.HighlightAchievements != nil {
		set.add("highlight_achievements", *upd.HighlightAchievements, &args)
	}
	if upd.EmphasizeSkills != nil {
		set.add("emphasize_skills", *upd.EmphasizeSkills, &args)
	}
	if upd.IncludeMetrics != nil {
		set.add("include_metrics", *upd.IncludeMetrics, &args)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE enhancement_settings SET %s updated_at=now() WHERE id=$%d RETURNING `+settingsCols,
		set.joined(), len(args))
	es, err := s.scanSettings(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapPGErr(err)
	}
	if es == nil {
		return nil, ErrNotFound
	}
	return es, nil
}

// Website methods

const websiteCols = `id, user_id, profile_id, template_id, subdomain, custom_domain, settings, published, created_at, updated_at`

func (s *PGStorage) scanWebsite(row pgx.Row) (*models.Website, error) {
	var w models.Website
	var settings []byte
	err := row.Scan(&w.ID, &w.UserID, &w.ProfileID, &w.TemplateID, &w.Subdomain, &w.CustomDomain,
		&settings, &w.Published, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.Settings = map[string]any{}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &w.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &w, nil
}

func (s *PGStorage) CreateWebsite(ctx context.Context, in models.InsertWebsite) (*models.Website, error) {
	settings := in.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	b, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO websites(user_id, profile_id, template_id, subdomain, custom_domain, settings)
		 VALUES($1,$2,$3,$4,$5,$6::jsonb) RETURNING `+websiteCols,
		in.UserID, in.ProfileID, in.TemplateID, in.Subdomain, in.CustomDomain, string(b))
	w, err := s.scanWebsite(row)
	if err != nil {
		return nil, wrapPGErr(err)
	}
	return w, nil
}

func (s *PGStorage) GetWebsite(ctx context.Context, id int64) (*models.Website, error) {
	return s.scanWebsite(s.pool.QueryRow(ctx,
		`SELECT `+websiteCols+` FROM websites WHERE id=$1`, id))
}

func (s *PGStorage) GetWebsitesByUserID(ctx context.Context, userID int64) ([]models.Website, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+websiteCols+` FROM websites WHERE user_id=$1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Website{}
	for rows.Next() {
		w, err := s.scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *PGStorage) GetWebsiteBySubdomain(ctx context.Context, subdomain string) (*models.Website, error) {
	return s.scanWebsite(s.pool.QueryRow(ctx,
		`SELECT `+websiteCols+` FROM websites WHERE subdomain=$1`, subdomain))
}

func (s *PGStorage) GetWebsiteByCustomDomain(ctx context.Context, domain string) (*models.Website, error) {
	return s.scanWebsite(s.pool.QueryRow(ctx,
		`SELECT `+websiteCols+` FROM websites WHERE custom_domain=$1`, domain))
}

func (s *PGStorage) UpdateWebsite(ctx context.Context, id int64, upd models.WebsiteUpdate) (*models.Website, error) {
	set, args := newSetClause()
	if upd.TemplateID != nil {
		set.add("template_id", *upd.TemplateID, &args)
	}
	if upd.Subdomain != nil {
		set.add("subdomain", *upd.Subdomain, &args)
	}
	if upd.CustomDomain != nil {
		set.add("custom_domain", *upd.CustomDomain, &args)
	}
	if upd.Settings != nil {
		b, err := json.Marshal(upd.Settings)
		if err != nil {
			return nil, err
		}
		set.add("settings", string(b), &args)
	}
	if upd.Published != nil {
		set.add("published", *upd.Published, &args)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE websites SET %s updated_at=now() WHERE id=$%d RETURNING `+websiteCols,
		set.joined(), len(args))
	w, err := s.scanWebsite(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapPGErr(err)
	}
	if w == nil {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *PGStorage) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

// setClause accumulates "col=$n," pairs for partial UPDATE statements.
// joined() keeps the trailing comma so the timestamp column can close
// the SET list.
type setClause struct {
	parts []string
}

func newSetClause() (*setClause, []any) {
	return &setClause{}, []any{}
}

func (c *setClause) add(col string, v any, args *[]any) {
	*args = append(*args, v)
	c.parts = append(c.parts, fmt.Sprintf("%s=$%d,", col, len(*args)))
}

func (c *setClause) joined() string {
	return strings.Join(c.parts, " ")
}
