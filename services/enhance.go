package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

var (
	// ErrUpstream wraps a failed text-generation call.
	ErrUpstream = errors.New("text generation failed")
	// ErrTimeout marks a text-generation call killed by its deadline.
	ErrTimeout = errors.New("text generation timed out")
	// ErrParse marks a model response that is not the expected JSON shape.
	ErrParse = errors.New("invalid model response")
)

const (
	genTemperature = 0.7
	genMaxTokens   = 1000
	callTimeout    = 30 * time.Second

	enhanceSystem = "You are an expert professional content writer specializing in career development and personal branding. " +
		"Your task is to enhance profile content to make it more compelling, effective, and tailored to the individual's goals while maintaining accuracy."

	recommendSystem = "You are an expert career advisor and personal branding consultant. " +
		"Analyze this professional profile data and provide specific content recommendations to improve each section."
)

type EnhancementOptions struct {
	Tone                  string
	Focus                 string
	Length                string
	HighlightAchievements bool
	EmphasizeSkills       bool
	IncludeMetrics        bool
}

func DefaultEnhancementOptions() EnhancementOptions {
	return EnhancementOptions{
		Tone:                  models.ToneProfessional,
		Focus:                 models.FocusBalanced,
		Length:                models.LengthDetailed,
		HighlightAchievements: true,
		EmphasizeSkills:       true,
		IncludeMetrics:        false,
	}
}

func OptionsFromSettings(s *models.EnhancementSettings) EnhancementOptions {
	if s == nil {
		return DefaultEnhancementOptions()
	}
	return EnhancementOptions{
		Tone:                  s.Tone,
		Focus:                 s.Focus,
		Length:                s.Length,
		HighlightAchievements: s.HighlightAchievements,
		EmphasizeSkills:       s.EmphasizeSkills,
		IncludeMetrics:        s.IncludeMetrics,
	}
}

// GenerateFunc is the outbound call seam; tests swap it for a fake.
type GenerateFunc func(ctx context.Context, prompt string, opts utils.GenOptions) (string, error)

// Enhancer rewrites profile sections and synthesizes recommendations
// through the text-generation API.
type Enhancer struct {
	generate GenerateFunc
}

func NewEnhancer(ctx context.Context, apiKey, model string) (*Enhancer, error) {
	client, err := utils.NewAIClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("ai client: %w", err)
	}
	return &Enhancer{
		generate: func(ctx context.Context, prompt string, opts utils.GenOptions) (string, error) {
			return utils.GenerateText(ctx, client, model, prompt, opts)
		},
	}, nil
}

// NewEnhancerWithGenerator wires a custom generation function. Used by
// tests and anywhere the real API should not be hit.
func NewEnhancerWithGenerator(generate GenerateFunc) *Enhancer {
	return &Enhancer{generate: generate}
}

// Prompt fragments keyed by the enumerated options, so an unknown value
// cannot silently produce a half-built instruction.
var focusDirectives = map[string]string{
	models.FocusTechnical:  "Focus on technical skills, expertise, and concrete implementation details. ",
	models.FocusLeadership: "Emphasize leadership qualities, team management, and strategic initiatives. ",
	models.FocusCreative:   "Highlight creative problem-solving, innovation, and unique approaches. ",
	models.FocusBalanced:   "Balance technical expertise with soft skills and business impact. ",
}

var lengthDirectives = map[string]string{
	models.LengthConcise:       "Keep the content brief and to the point. ",
	models.LengthDetailed:      "Provide a moderate level of detail that balances brevity and completeness. ",
	models.LengthComprehensive: "Offer comprehensive details that showcase depth of expertise. ",
}

func buildEnhancementPrompt(section, content string, opts EnhancementOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please enhance the following %s section from a professional profile.\n\n", section)
	fmt.Fprintf(&b, "Original content:\n%q\n\n", content)
	fmt.Fprintf(&b, "Use a %s tone. ", opts.Tone)
	b.WriteString(focusDirectives[opts.Focus])
	b.WriteString(lengthDirectives[opts.Length])
	if opts.HighlightAchievements {
		b.WriteString("Highlight specific achievements and results. ")
	}
	if opts.EmphasizeSkills {
		b.WriteString("Emphasize relevant skills and technologies. ")
	}
	if opts.IncludeMetrics {
		b.WriteString("Include metrics and quantifiable results where appropriate. ")
	}
	b.WriteString("\n\nProvide only the enhanced content without explanations or additional commentary. " +
		"Maintain the first-person perspective if present in the original. " +
		"Ensure the content remains truthful and accurate to the original information while making it more impactful.")
	return b.String()
}

func wrapGenErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// EnhanceSection rewrites one text section. The model's text comes back
// verbatim; when the model returns nothing the original content is kept.
func (e *Enhancer) EnhanceSection(ctx context.Context, section, content string, opts EnhancementOptions) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	out, err := e.generate(cctx, buildEnhancementPrompt(section, content, opts), utils.GenOptions{
		System:      enhanceSystem,
		Temperature: genTemperature,
		MaxTokens:   genMaxTokens,
	})
	if err != nil {
		return "", wrapGenErr(err)
	}
	if out == "" {
		return content, nil
	}
	return out, nil
}

// EnhanceProfile produces a new ProfileData with the summary, each
// experience description, and the skills list rewritten. Sections are
// independent, so experience descriptions run concurrently.
func (e *Enhancer) EnhanceProfile(ctx context.Context, profile *models.ProfileData, opts EnhancementOptions) (*models.ProfileData, error) {
	enhanced := *profile

	if profile.Summary != "" {
		summary, err := e.EnhanceSection(ctx, "summary", profile.Summary, opts)
		if err != nil {
			return nil, err
		}
		enhanced.Summary = summary
	}

	if len(profile.Experiences) > 0 {
		enhanced.Experiences = make([]models.Experience, len(profile.Experiences))
		copy(enhanced.Experiences, profile.Experiences)
		g, gctx := errgroup.WithContext(ctx)
		for i := range enhanced.Experiences {
			if enhanced.Experiences[i].Description == "" {
				continue
			}
			i := i
			g.Go(func() error {
				desc, err := e.EnhanceSection(gctx, "experience", enhanced.Experiences[i].Description, opts)
				if err != nil {
					return err
				}
				enhanced.Experiences[i].Description = desc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if len(profile.Skills) > 0 {
		skills, err := e.enhanceSkills(ctx, profile.Skills, opts)
		if err != nil {
			return nil, err
		}
		enhanced.Skills = skills
	}

	return &enhanced, nil
}

// enhanceSkills round-trips the list through a comma-joined string.
// Skills stay concise regardless of the requested length.
func (e *Enhancer) enhanceSkills(ctx context.Context, skills []string, opts EnhancementOptions) ([]string, error) {
	conciseOpts := opts
	conciseOpts.Length = models.LengthConcise
	text, err := e.EnhanceSection(ctx, "skills", strings.Join(skills, ", "), conciseOpts)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, s := range strings.Split(text, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Recommendations asks the model for a fixed-shape JSON object of
// per-section suggestion lists.
func (e *Enhancer) Recommendations(ctx context.Context, profile *models.ProfileData) (map[string][]string, error) {
	type expSummary struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Description string `json:"description"`
	}
	exps := make([]expSummary, 0, len(profile.Experiences))
	for _, e := range profile.Experiences {
		exps = append(exps, expSummary{Title: e.Title, Company: e.Company, Description: e.Description})
	}
	summary, err := json.Marshal(map[string]any{
		"summary":     profile.Summary,
		"headline":    profile.Headline,
		"experiences": exps,
		"skills":      profile.Skills,
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please analyze this professional profile data and provide specific recommendations to improve and enhance the content for each section. ")
	b.WriteString("Focus on making the profile more compelling, achievement-oriented, and professionally effective.\n\n")
	b.WriteString("Profile data:\n")
	b.Write(summary)
	b.WriteString("\n\nProvide your recommendations in JSON format with the following structure:\n")
	b.WriteString(`{"summary": ["recommendation 1", "recommendation 2"], "headline": ["recommendation 1"], ` +
		`"experiences": ["recommendation 1", "recommendation 2"], "skills": ["recommendation 1", "recommendation 2"], ` +
		`"general": ["recommendation 1", "recommendation 2"]}`)

	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	out, err := e.generate(cctx, b.String(), utils.GenOptions{
		System:      recommendSystem,
		Temperature: genTemperature,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, wrapGenErr(err)
	}

	recs := map[string][]string{}
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations object", ErrParse)
	}
	return recs, nil
}
