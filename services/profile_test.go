package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

func TestMain(m *testing.M) {
	FetchDelay = 0
	m.Run()
}

// jsonOrIdentity answers recommendation calls with the canned JSON and
// every other call with the original content.
func jsonOrIdentity(recsJSON string) GenerateFunc {
	return func(ctx context.Context, prompt string, opts utils.GenOptions) (string, error) {
		if opts.JSONOutput {
			return recsJSON, nil
		}
		return identityGenerator(ctx, prompt, opts)
	}
}

func TestFetchProfile(t *testing.T) {
	svc := NewProfileService(NewEnhancerWithGenerator(identityGenerator))

	profile, err := svc.FetchProfile(context.Background(), "https://linkedin.com/in/sample-user")
	assert.NoError(t, err)
	assert.Equal(t, "Sample", profile.FirstName)
	assert.Equal(t, "User", profile.LastName)
	assert.NotEmpty(t, profile.Skills)
	assert.NotEmpty(t, profile.Experiences)

	t.Run("cancelled context stops the fetch", func(t *testing.T) {
		FetchDelay = 50 * time.Millisecond
		defer func() { FetchDelay = 0 }()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.FetchProfile(ctx, "https://linkedin.com/in/sample-user")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExtractUsername(t *testing.T) {
	assert.Equal(t, "jane-doe", extractUsername("https://www.linkedin.com/in/jane-doe"))
	assert.Equal(t, "jane-doe", extractUsername("https://linkedin.com/in/jane-doe/details"))
	assert.Equal(t, "unknown", extractUsername("https://example.com/jane"))
}

func TestNormalize(t *testing.T) {
	p := &models.ProfileData{}
	Normalize(p)
	assert.Equal(t, "Unknown", p.FirstName)
	assert.Equal(t, "User", p.LastName)

	p = &models.ProfileData{FirstName: "Jane", LastName: "Doe"}
	Normalize(p)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
}

func TestProcess(t *testing.T) {
	recs := `{"summary": ["Lead with impact"], "general": ["Shorten the headline"]}`
	svc := NewProfileService(NewEnhancerWithGenerator(jsonOrIdentity(recs)))

	t.Run("url input fetches the sample profile", func(t *testing.T) {
		res, err := svc.Process(context.Background(), "https://linkedin.com/in/sample-user", DefaultEnhancementOptions())
		assert.NoError(t, err)
		assert.Equal(t, "Sample", res.Original.FirstName)
		assert.Equal(t, res.Original.Skills, res.Enhanced.Skills)
		assert.Equal(t, []string{"Lead with impact"}, res.Recommendations["summary"])
	})

	t.Run("json input is parsed and normalized", func(t *testing.T) {
		res, err := svc.Process(context.Background(), `{"headline": "Engineer", "summary": "I build things."}`, DefaultEnhancementOptions())
		assert.NoError(t, err)
		assert.Equal(t, "Unknown", res.Original.FirstName)
		assert.Equal(t, "User", res.Original.LastName)
		assert.Equal(t, "I build things.", res.Enhanced.Summary)
	})

	t.Run("garbage input fails with ErrFormat", func(t *testing.T) {
		_, err := svc.Process(context.Background(), "not a url and {not json", DefaultEnhancementOptions())
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestFormatForTemplate(t *testing.T) {
	p := &models.ProfileData{
		FirstName: "Jane",
		LastName:  "Doe",
		Headline:  "Engineer",
		Summary:   "I build things.",
		Location:  &models.Location{City: "Berlin", Country: "Germany"},
		Skills:    []string{"Go"},
	}
	out := FormatForTemplate(p, "minimal")
	assert.Equal(t, "minimal", out["template"])
	personal := out["personal"].(map[string]any)
	assert.Equal(t, "Jane Doe", personal["name"])
	assert.Equal(t, "Engineer", personal["title"])
	assert.Equal(t, "Berlin, Germany", personal["location"])
	assert.Equal(t, []string{"Go"}, out["skills"])

	t.Run("partial location", func(t *testing.T) {
		p := &models.ProfileData{FirstName: "Jane", LastName: "Doe", Location: &models.Location{City: "Berlin"}}
		personal := FormatForTemplate(p, "minimal")["personal"].(map[string]any)
		assert.Equal(t, "Berlin", personal["location"])
	})
}
