package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"linkfolio/backend/models"
)

// ErrFormat marks a profile payload that is neither a profile URL nor
// parseable JSON.
var ErrFormat = errors.New("unrecognized profile payload")

// FetchDelay mimics the latency of the real profile API. Tests zero it.
var FetchDelay = 1 * time.Second

var usernameRe = regexp.MustCompile(`linkedin\.com/in/([^/]+)`)

// ProfileService fetches profile data and runs it through the
// enhancement pipeline.
type ProfileService struct {
	enhancer *Enhancer
}

func NewProfileService(enhancer *Enhancer) *ProfileService {
	return &ProfileService{enhancer: enhancer}
}

// FetchProfile returns the profile behind a LinkedIn URL. The real API
// integration is pending; until then a fixed sample record comes back
// after an artificial delay.
func (s *ProfileService) FetchProfile(ctx context.Context, profileURL string) (*models.ProfileData, error) {
	log.Printf("fetching profile for: %s", extractUsername(profileURL))

	select {
	case <-time.After(FetchDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &models.ProfileData{
		FirstName: "Sample",
		LastName:  "User",
		Headline:  "Software Engineer",
		Summary:   "Experienced software engineer with a passion for building scalable applications.",
		Skills:    []string{"JavaScript", "React", "Node.js", "TypeScript", "AWS"},
		Experiences: []models.Experience{
			{
				Title:       "Senior Software Engineer",
				Company:     "Tech Company",
				Description: "Led development of cloud-based applications. Implemented CI/CD pipelines and microservices architecture.",
				StartDate:   "2020-01",
				EndDate:     "2023-01",
				Location:    "San Francisco, CA",
			},
			{
				Title:       "Software Developer",
				Company:     "Startup Inc",
				Description: "Developed front-end components using React and TypeScript. Collaborated with UX designers to implement responsive designs.",
				StartDate:   "2018-03",
				EndDate:     "2019-12",
				Location:    "New York, NY",
			},
		},
		Education: []models.Education{
			{
				School:       "University of Technology",
				Degree:       "Bachelor of Science",
				FieldOfStudy: "Computer Science",
				StartDate:    "2014-09",
				EndDate:      "2018-05",
			},
		},
	}, nil
}

func extractUsername(profileURL string) string {
	if m := usernameRe.FindStringSubmatch(profileURL); m != nil {
		return m[1]
	}
	return "unknown"
}

func isProfileURL(s string) bool {
	return strings.HasPrefix(s, "http") || strings.Contains(s, "linkedin.com")
}

// Normalize fills the required name fields with placeholders when the
// source left them empty.
func Normalize(p *models.ProfileData) {
	if p.FirstName == "" {
		p.FirstName = "Unknown"
	}
	if p.LastName == "" {
		p.LastName = "User"
	}
}

type ProcessResult struct {
	Original        *models.ProfileData `json:"original"`
	Enhanced        *models.ProfileData `json:"enhanced"`
	Recommendations map[string][]string `json:"recommendations"`
}

// Process accepts either a profile URL or a JSON-encoded profile,
// normalizes it, and runs enhancement plus recommendation generation.
func (s *ProfileService) Process(ctx context.Context, input string, opts EnhancementOptions) (*ProcessResult, error) {
	var original *models.ProfileData
	if isProfileURL(input) {
		fetched, err := s.FetchProfile(ctx, input)
		if err != nil {
			return nil, err
		}
		original = fetched
	} else {
		original = &models.ProfileData{}
		if err := json.Unmarshal([]byte(input), original); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}
	return s.ProcessData(ctx, original, opts)
}

// ProcessData runs an already-structured profile through the pipeline.
func (s *ProfileService) ProcessData(ctx context.Context, original *models.ProfileData, opts EnhancementOptions) (*ProcessResult, error) {
	Normalize(original)

	enhanced, err := s.enhancer.EnhanceProfile(ctx, original, opts)
	if err != nil {
		return nil, err
	}
	recommendations, err := s.enhancer.Recommendations(ctx, original)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{Original: original, Enhanced: enhanced, Recommendations: recommendations}, nil
}

// FormatForTemplate flattens a profile into the shape website templates
// consume.
func FormatForTemplate(p *models.ProfileData, templateID string) map[string]any {
	location := ""
	if p.Location != nil {
		parts := []string{}
		if p.Location.City != "" {
			parts = append(parts, p.Location.City)
		}
		if p.Location.Country != "" {
			parts = append(parts, p.Location.Country)
		}
		location = strings.Join(parts, ", ")
	}
	return map[string]any{
		"template": templateID,
		"personal": map[string]any{
			"name":     p.FirstName + " " + p.LastName,
			"title":    p.Headline,
			"summary":  p.Summary,
			"image":    p.ProfilePictureURL,
			"location": location,
		},
		"experience":     p.Experiences,
		"education":      p.Education,
		"skills":         p.Skills,
		"certifications": p.Certifications,
		"languages":      p.Languages,
		"projects":       p.Projects,
	}
}
