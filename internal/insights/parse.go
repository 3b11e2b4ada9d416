package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	maxKeyInsights     = 5
	maxCategoryReviews = 5
	maxOpportunities   = 3
	maxSeasonalAdvice  = 3
)

// parseInsights decodes the raw model output into a validated Insights
// value: markdown fences are stripped, missing sections become empty slices
// and oversized sections are truncated.
func parseInsights(raw string) (*Insights, error) {
	clean := cleanModelJSON(raw)

	var ins Insights
	if err := json.Unmarshal([]byte(clean), &ins); err != nil {
		return nil, fmt.Errorf("parseInsights: unmarshal model output: %w", err)
	}

	if ins.KeyInsights == nil {
		ins.KeyInsights = []KeyInsight{}
	}
	if ins.CategoryReviews == nil {
		ins.CategoryReviews = []CategoryReview{}
	}
	if ins.Opportunities == nil {
		ins.Opportunities = []SavingOpportunity{}
	}
	if ins.SeasonalAdvice == nil {
		ins.SeasonalAdvice = []SeasonalAdvice{}
	}

	if len(ins.KeyInsights) > maxKeyInsights {
		ins.KeyInsights = ins.KeyInsights[:maxKeyInsights]
	}
	if len(ins.CategoryReviews) > maxCategoryReviews {
		ins.CategoryReviews = ins.CategoryReviews[:maxCategoryReviews]
	}
	if len(ins.Opportunities) > maxOpportunities {
		ins.Opportunities = ins.Opportunities[:maxOpportunities]
	}
	if len(ins.SeasonalAdvice) > maxSeasonalAdvice {
		ins.SeasonalAdvice = ins.SeasonalAdvice[:maxSeasonalAdvice]
	}

	return &ins, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
