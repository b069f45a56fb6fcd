package assessment

// ThemeScore computes a theme's overall score: the rounded mean of its
// sub-theme scores. A theme with no sub-themes scores 0, never an error.
func ThemeScore(t Theme) int {
	if len(t.SubThemes) == 0 {
		return 0
	}
	var sum float64
	for _, st := range t.SubThemes {
		sum += st.Score
	}
	return roundScore(sum / float64(len(t.SubThemes)))
}

// OverallScore computes the assessment's headline score: the rounded mean of
// the theme overall scores. Cross-cutting themes are excluded; they inform
// recommendations but do not move the headline number.
func OverallScore(themes []Theme) int {
	if len(themes) == 0 {
		return 0
	}
	var sum float64
	for _, t := range themes {
		sum += float64(t.OverallScore)
	}
	return roundScore(sum / float64(len(themes)))
}

// AggregateTheme recomputes a theme's derived score and stage in place.
func AggregateTheme(t *Theme) {
	t.OverallScore = ThemeScore(*t)
	t.Stage = ScoreToStage(float64(t.OverallScore))
}

// Reaggregate recomputes every derived field on the assessment: sub-theme and
// cross-cutting stages, theme scores/stages, the overall score/stage and the
// recommendation list. It runs synchronously and completely, so downstream
// consumers never observe a partially updated assessment.
func Reaggregate(a *PolicyAssessment) {
	for i := range a.Themes {
		t := &a.Themes[i]
		for j := range t.SubThemes {
			t.SubThemes[j].Stage = ScoreToStage(t.SubThemes[j].Score)
		}
		AggregateTheme(t)
	}
	for i := range a.CrossCutting {
		a.CrossCutting[i].Stage = ScoreToStage(a.CrossCutting[i].Score)
	}

	a.OverallScore = OverallScore(a.Themes)
	a.OverallStage = ScoreToStage(float64(a.OverallScore))
	a.Recommendations = Synthesize(a)
}
