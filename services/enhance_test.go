package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

var originalContentRe = regexp.MustCompile(`Original content:\n(".*")\n`)

// identityGenerator echoes the quoted original content back, standing in
// for an upstream model that changes nothing.
func identityGenerator(ctx context.Context, prompt string, opts utils.GenOptions) (string, error) {
	m := originalContentRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", errors.New("prompt missing original content")
	}
	return strconv.Unquote(m[1])
}

func TestBuildEnhancementPrompt(t *testing.T) {
	opts := EnhancementOptions{
		Tone:                  models.ToneEnthusiastic,
		Focus:                 models.FocusLeadership,
		Length:                models.LengthComprehensive,
		HighlightAchievements: true,
		EmphasizeSkills:       false,
		IncludeMetrics:        true,
	}
	prompt := buildEnhancementPrompt("summary", "I write software.", opts)

	assert.Contains(t, prompt, "summary section")
	assert.Contains(t, prompt, `"I write software."`)
	assert.Contains(t, prompt, "Use a enthusiastic tone.")
	assert.Contains(t, prompt, "leadership qualities")
	assert.Contains(t, prompt, "comprehensive details")
	assert.Contains(t, prompt, "specific achievements")
	assert.NotContains(t, prompt, "relevant skills and technologies")
	assert.Contains(t, prompt, "metrics and quantifiable results")
	assert.Contains(t, prompt, "Provide only the enhanced content")

	t.Run("every enum value has a directive", func(t *testing.T) {
		for _, f := range models.Focuses {
			assert.NotEmpty(t, focusDirectives[f], f)
		}
		for _, l := range models.Lengths {
			assert.NotEmpty(t, lengthDirectives[l], l)
		}
	})
}

func TestEnhanceSection(t *testing.T) {
	ctx := context.Background()
	opts := DefaultEnhancementOptions()

	t.Run("returns model text verbatim", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(ctx context.Context, prompt string, o utils.GenOptions) (string, error) {
			assert.Equal(t, enhanceSystem, o.System)
			assert.InDelta(t, 0.7, o.Temperature, 0.001)
			assert.Equal(t, int32(1000), o.MaxTokens)
			return "Polished text.", nil
		})
		out, err := e.EnhanceSection(ctx, "summary", "Rough text.", opts)
		assert.NoError(t, err)
		assert.Equal(t, "Polished text.", out)
	})

	t.Run("empty response keeps the original", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "", nil
		})
		out, err := e.EnhanceSection(ctx, "summary", "Rough text.", opts)
		assert.NoError(t, err)
		assert.Equal(t, "Rough text.", out)
	})

	t.Run("transport failure wraps ErrUpstream", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "", errors.New("connection refused")
		})
		_, err := e.EnhanceSection(ctx, "summary", "Rough text.", opts)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("deadline maps to ErrTimeout", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "", context.DeadlineExceeded
		})
		_, err := e.EnhanceSection(ctx, "summary", "Rough text.", opts)
		assert.ErrorIs(t, err, ErrTimeout)
	})
}

func TestEnhanceProfileIdentityRoundTrip(t *testing.T) {
	e := NewEnhancerWithGenerator(identityGenerator)
	profile := &models.ProfileData{
		FirstName: "Sample",
		LastName:  "User",
		Summary:   "I build backend services.",
		Skills:    []string{"Go", "Postgres", "gRPC"},
		Experiences: []models.Experience{
			{Title: "Engineer", Company: "Acme", Description: "Shipped the billing system."},
			{Title: "Intern", Company: "初創", Description: "Wrote integration tests."},
		},
	}

	enhanced, err := e.EnhanceProfile(context.Background(), profile, DefaultEnhancementOptions())
	assert.NoError(t, err)

	// An identity upstream must reproduce the profile exactly. In
	// particular the skills list survives the join/split round trip.
	assert.Equal(t, profile.Summary, enhanced.Summary)
	assert.Equal(t, profile.Skills, enhanced.Skills)
	assert.Equal(t, profile.Experiences[0].Description, enhanced.Experiences[0].Description)
	assert.Equal(t, profile.Experiences[1].Description, enhanced.Experiences[1].Description)

	t.Run("input profile is not mutated", func(t *testing.T) {
		assert.Equal(t, "I build backend services.", profile.Summary)
		assert.Equal(t, []string{"Go", "Postgres", "gRPC"}, profile.Skills)
	})
}

func TestEnhanceProfileSkills(t *testing.T) {
	t.Run("skills prompt is always concise", func(t *testing.T) {
		var skillsPrompt string
		e := NewEnhancerWithGenerator(func(ctx context.Context, prompt string, o utils.GenOptions) (string, error) {
			skillsPrompt = prompt
			return "Go, Kubernetes", nil
		})
		opts := DefaultEnhancementOptions()
		opts.Length = models.LengthComprehensive
		_, err := e.EnhanceProfile(context.Background(), &models.ProfileData{Skills: []string{"Go"}}, opts)
		assert.NoError(t, err)
		assert.Contains(t, skillsPrompt, lengthDirectives[models.LengthConcise])
	})

	t.Run("result is a trimmed list, never a string", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "  Go ,, Kubernetes,  Terraform  ,", nil
		})
		enhanced, err := e.EnhanceProfile(context.Background(), &models.ProfileData{Skills: []string{"Go"}}, DefaultEnhancementOptions())
		assert.NoError(t, err)
		assert.Equal(t, []string{"Go", "Kubernetes", "Terraform"}, enhanced.Skills)
	})

	t.Run("one failing section fails the whole profile", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(ctx context.Context, prompt string, o utils.GenOptions) (string, error) {
			return "", errors.New("boom")
		})
		_, err := e.EnhanceProfile(context.Background(), &models.ProfileData{Summary: "x"}, DefaultEnhancementOptions())
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	profile := &models.ProfileData{
		FirstName: "Sample",
		LastName:  "User",
		Headline:  "Engineer",
		Summary:   "I build things.",
		Skills:    []string{"Go"},
		Experiences: []models.Experience{
			{Title: "Engineer", Company: "Acme", Description: "Built APIs."},
		},
	}

	t.Run("valid response decodes per section", func(t *testing.T) {
		var gotOpts utils.GenOptions
		e := NewEnhancerWithGenerator(func(ctx context.Context, prompt string, o utils.GenOptions) (string, error) {
			gotOpts = o
			assert.Contains(t, prompt, `"headline":"Engineer"`)
			return `{"summary": ["Add outcomes"], "skills": ["List cloud skills"], "general": ["Add a photo"]}`, nil
		})
		recs, err := e.Recommendations(ctx, profile)
		assert.NoError(t, err)
		assert.True(t, gotOpts.JSONOutput)
		assert.Equal(t, recommendSystem, gotOpts.System)
		assert.Equal(t, []string{"Add outcomes"}, recs["summary"])
		assert.Len(t, recs, 3)
	})

	t.Run("invalid JSON fails with ErrParse", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "sorry, here are some thoughts:", nil
		})
		_, err := e.Recommendations(ctx, profile)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("wrong shape fails with ErrParse", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return `{"summary": "not a list"}`, nil
		})
		_, err := e.Recommendations(ctx, profile)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("empty object fails with ErrParse", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return `{}`, nil
		})
		_, err := e.Recommendations(ctx, profile)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("transport failure wraps ErrUpstream", func(t *testing.T) {
		e := NewEnhancerWithGenerator(func(context.Context, string, utils.GenOptions) (string, error) {
			return "", errors.New("connection reset")
		})
		_, err := e.Recommendations(ctx, profile)
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestOptionsFromSettings(t *testing.T) {
	t.Run("nil settings fall back to defaults", func(t *testing.T) {
		assert.Equal(t, DefaultEnhancementOptions(), OptionsFromSettings(nil))
	})

	t.Run("settings map one to one", func(t *testing.T) {
		opts := OptionsFromSettings(&models.EnhancementSettings{
			Tone:           models.ToneConversational,
			Focus:          models.FocusCreative,
			Length:         models.LengthConcise,
			IncludeMetrics: true,
		})
		assert.Equal(t, models.ToneConversational, opts.Tone)
		assert.Equal(t, models.FocusCreative, opts.Focus)
		assert.Equal(t, models.LengthConcise, opts.Length)
		assert.False(t, opts.HighlightAchievements)
		assert.True(t, opts.IncludeMetrics)
	})
}
