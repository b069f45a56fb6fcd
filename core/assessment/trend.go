package assessment

import (
	"sort"
	"time"
)

// TrendPoint is one charting point derived from a single assessment.
type TrendPoint struct {
	Date         time.Time      `json:"date"`
	OverallScore int            `json:"overall_score"`
	OverallStage StageLabel     `json:"overall_stage"`
	ThemeScores  map[string]int `json:"theme_scores"` // theme code -> score
}

// Trend projects an unordered collection of assessments into charting points
// sorted ascending by assessment date; ties keep input order. Scores are
// recomputed from the sub-theme data, so the projection is pure and can be
// rerun over the same input with no side effects. Irregular intervals are
// plotted as given.
func Trend(assessments []PolicyAssessment) []TrendPoint {
	points := make([]TrendPoint, 0, len(assessments))
	for _, a := range assessments {
		themeScores := make(map[string]int, len(a.Themes))

		themes := make([]Theme, len(a.Themes))
		copy(themes, a.Themes)
		for i := range themes {
			themes[i].OverallScore = ThemeScore(themes[i])
			themeScores[themes[i].Code] = themes[i].OverallScore
		}

		overall := OverallScore(themes)
		points = append(points, TrendPoint{
			Date:         a.Date,
			OverallScore: overall,
			OverallStage: ScoreToStage(float64(overall)),
			ThemeScores:  themeScores,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
