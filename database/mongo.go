package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linkfolio/backend/models"
)

// MongoStorage keeps the application's int64 identifiers as an indexed
// "id" field on every document and hands them out from a counters
// collection, so no translation between id spaces ever happens.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStorage(ctx context.Context, uri string) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	s := &MongoStorage{client: client, db: client.Database("linkfolio")}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	sparse := options.Index().SetUnique(true).SetSparse(true)
	idx := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		"waitlistEntries": {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"profiles": {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		},
		"enhancementSettings": {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "profileId", Value: 1}}, Options: options.Index()},
		},
		"websites": {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "subdomain", Value: 1}}, Options: sparse},
			{Keys: bson.D{{Key: "customDomain", Value: 1}}, Options: sparse},
		},
	}
	for coll, indexes := range idx {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// nextID atomically increments the named counter and returns the new
// value. Counters start at 1 on first use.
func (s *MongoStorage) nextID(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return doc.Seq, nil
}

func wrapMongoErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func updateOne[T any](ctx context.Context, coll *mongo.Collection, id int64, set bson.M) (*T, error) {
	var out T
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapMongoErr(err)
	}
	return &out, nil
}

// User methods

func (s *MongoStorage) CreateUser(ctx context.Context, u models.InsertUser) (*models.User, error) {
	id, err := s.nextID(ctx, "users")
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:        id,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: time.Now(),
	}
	if _, err := s.db.Collection("users").InsertOne(ctx, user); err != nil {
		return nil, wrapMongoErr(err)
	}
	return &user, nil
}

func (s *MongoStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return findOne[models.User](ctx, s.db.Collection("users"), bson.M{"id": id})
}

func (s *MongoStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, s.db.Collection("users"), bson.M{"username": username})
}

// Waitlist methods

func (s *MongoStorage) CreateWaitlistEntry(ctx context.Context, e models.InsertWaitlistEntry) (*models.WaitlistEntry, error) {
	id, err := s.nextID(ctx, "waitlistEntries")
	if err != nil {
		return nil, err
	}
	entry := models.WaitlistEntry{
		ID:          id,
		Email:       e.Email,
		LinkedinURL: e.LinkedinURL,
		Profession:  e.Profession,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if _, err := s.db.Collection("waitlistEntries").InsertOne(ctx, entry); err != nil {
		return nil, wrapMongoErr(err)
	}
	return &entry, nil
}

func (s *MongoStorage) GetWaitlistEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	return findOne[models.WaitlistEntry](ctx, s.db.Collection("waitlistEntries"), bson.M{"email": email})
}

func (s *MongoStorage) ListWaitlistEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	cur, err := s.db.Collection("waitlistEntries").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.WaitlistEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile methods

func (s *MongoStorage) CreateProfile(ctx context.Context, p models.InsertProfile) (*models.Profile, error) {
	id, err := s.nextID(ctx, "profiles")
	if err != nil {
		return nil, err
	}
	profile := models.Profile{
		ID:          id,
		UserID:      p.UserID,
		LinkedinURL: p.LinkedinURL,
		LastUpdated: time.Now(),
	}
	if _, err := s.db.Collection("profiles").InsertOne(ctx, profile); err != nil {
		return nil, wrapMongoErr(err)
	}
	return &profile, nil
}

func (s *MongoStorage) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return findOne[models.Profile](ctx, s.db.Collection("profiles"), bson.M{"id": id})
}

func (s *MongoStorage) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return findOne[models.Profile](ctx, s.db.Collection("profiles"), bson.M{"userId": userID})
}

func (s *MongoStorage) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Profile, error) {
	set := bson.M{"lastUpdated": time.Now()}
	if upd.UserID != nil {
		set["userId"] = *upd.UserID
	}
	if upd.LinkedinURL != nil {
		set["linkedinUrl"] = *upd.LinkedinURL
	}
	if upd.OriginalData != nil {
		set["originalData"] = upd.OriginalData
	}
	if upd.EnhancedData != nil {
		set["enhancedData"] = upd.EnhancedData
	}
	return updateOne[models.Profile](ctx, s.db.Collection("profiles"), id, set)
}

// Enhancement settings methods

func (s *MongoStorage) CreateEnhancementSettings(ctx context.Context, in models.InsertEnhancementSettings) (*models.EnhancementSettings, error) {
	id, err := s.nextID(ctx, "enhancementSettings")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	settings := models.EnhancementSettings{
		ID:                    id,
		UserID:                in.UserID,
		ProfileID:             in.ProfileID,
		Tone:                  strOr(in.Tone, models.ToneProfessional),
		Focus:                 strOr(in.Focus, models.FocusBalanced),
		Length:                strOr(in.Length, models.LengthDetailed),
		HighlightAchievements: boolOr(in.HighlightAchievements, true),
		EmphasizeSkills:       boolOr(in.EmphasizeSkills, true),
		IncludeMetrics:        boolOr(in.IncludeMetrics, false),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if _, err := s.db.Collection("enhancementSettings").InsertOne(ctx, settings); err != nil {
		return nil, wrapMongoErr(err)
	}
	return &settings, nil
}

func (s *MongoStorage) GetEnhancementSettings(ctx context.Context, id int64) (*models.EnhancementSettings, error) {
	return findOne[models.EnhancementSettings](ctx, s.db.Collection("enhancementSettings"), bson.M{"id": id})
}

func (s *MongoStorage) GetEnhancementSettingsByProfile(ctx context.Context, profileID int64) (*models.EnhancementSettings, error) {
	return findOne[models.EnhancementSettings](ctx, s.db.Collection("enhancementSettings"), bson.M{"profileId": profileID})
}

func (s *MongoStorage) UpdateEnhancementSettings(ctx context.Context, id int64, upd models.SettingsUpdate) (*models.EnhancementSettings, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Tone != nil {
		set["tone"] = *upd.Tone
	}
	if upd.Focus != nil {
		set["focus"] = *upd.Focus
	}
	if upd.Length != nil {
		set["length"] = *upd.Length
	}
	if upd.HighlightAchievements != nil {
		set["highlightAchievements"] = *upd.HighlightAchievements
	}
	if upd.EmphasizeSkills != nil {
		set["emphasizeSkills"] = *upd.EmphasizeSkills
	}
	if upd.IncludeMetrics != nil {
		set["includeMetrics"] = *upd.IncludeMetrics
	}
	return updateOne[models.EnhancementSettings](ctx, s.db.Collection("enhancementSettings"), id, set)
}

// Website methods

func (s *MongoStorage) CreateWebsite(ctx context.Context, w models.InsertWebsite) (*models.Website, error) {
	id, err := s.nextID(ctx, "websites")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	site := models.Website{
		ID:           id,
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
	if _, err := s.db.Collection("websites").InsertOne(ctx, site); err != nil {
		return nil, wrapMongoErr(err)
	}
	return &site, nil
}

func (s *MongoStorage) GetWebsite(ctx context.Context, id int64) (*models.Website, error) {
	return findOne[models.Website](ctx, s.db.Collection("websites"), bson.M{"id": id})
}

func (s *MongoStorage) GetWebsitesByUserID(ctx context.Context, userID int64) ([]models.Website, error) {
	cur, err := s.db.Collection("websites").Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Website{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStorage) GetWebsiteBySubdomain(ctx context.Context, subdomain string) (*models.Website, error) {
	return findOne[models.Website](ctx, s.db.Collection("websites"), bson.M{"subdomain": subdomain})
}

func (s *MongoStorage) GetWebsiteByCustomDomain(ctx context.Context, domain string) (*models.Website, error) {
	return findOne[models.Website](ctx, s.db.Collection("websites"), bson.M{"customDomain": domain})
}

func (s *MongoStorage) UpdateWebsite(ctx context.Context, id int64, upd models.WebsiteUpdate) (*models.Website, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.TemplateID != nil {
		set["templateId"] = *upd.TemplateID
	}
	if upd.Subdomain != nil {
		set["subdomain"] = *upd.Subdomain
	}
	if upd.CustomDomain != nil {
		set["customDomain"] = *upd.CustomDomain
	}
	if upd.Settings != nil {
		set["settings"] = upd.Settings
	}
	if upd.Published != nil {
		set["published"] = *upd.Published
	}
	return updateOne[models.Website](ctx, s.db.Collection("websites"), id, set)
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
