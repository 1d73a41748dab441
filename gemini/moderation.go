package gemini

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	languagepb "cloud.google.com/go/language/apiv1/languagepb"

	"github.com/datar-psa/rageval/api"
)

// LanguageModerator implements ModerationProvider using the Google Cloud
// Natural Language API client
type LanguageModerator struct {
	client *language.Client
}

// NewLanguageModerator creates a moderation provider from a preconfigured
// *language.Client (auth handled by caller)
func NewLanguageModerator(client *language.Client) api.ModerationProvider {
	return &LanguageModerator{client: client}
}

// Moderate analyzes content for safety using the Cloud Natural Language API
func (p *LanguageModerator) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("language client is required")
	}

	req := &languagepb.ModerateTextRequest{
		Document: &languagepb.Document{
			Type: languagepb.Document_PLAIN_TEXT,
			Source: &languagepb.Document_Content{
				Content: content,
			},
		},
	}

	resp, err := p.client.ModerateText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("moderate text failed: %w", err)
	}

	categories := make([]api.ModerationCategory, 0, len(resp.ModerationCategories))
	for _, c := range resp.ModerationCategories {
		categories = append(categories, api.ModerationCategory{
			Name:       mapCategoryName(c.Name),
			Confidence: float64(c.Confidence),
		})
	}

	return &api.ModerationResult{Categories: categories}, nil
}

// mapCategoryName maps Cloud Natural Language category names to the
// developer-friendly names in api.ModerationCategories
func mapCategoryName(googleCategory string) string {
	switch googleCategory {
	case "Death, Harm & Tragedy":
		return "DeathHarmTragedy"
	case "Firearms & Weapons":
		return "FirearmsWeapons"
	case "Public Safety":
		return "PublicSafety"
	case "Religion & Belief":
		return "ReligionBelief"
	case "Illicit Drugs":
		return "IllicitDrugs"
	case "War & Conflict":
		return "WarConflict"
	default:
		// Single-word categories match their friendly names already
		return googleCategory
	}
}
