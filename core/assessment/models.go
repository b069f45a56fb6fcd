package assessment

import (
	"time"
)

// Scope levels
type ScopeLevel string

const (
	ScopeSchool   ScopeLevel = "school"
	ScopeDistrict ScopeLevel = "district"
	ScopeNational ScopeLevel = "national"
)

var AllScopeLevels = []ScopeLevel{ScopeSchool, ScopeDistrict, ScopeNational}

func (s ScopeLevel) IsValid() bool {
	for _, lvl := range AllScopeLevels {
		if s == lvl {
			return true
		}
	}
	return false
}

// Workflow statuses
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
	StatusArchived  Status = "archived"
)

var statusOrder = map[Status]int{
	StatusDraft:     1,
	StatusCompleted: 2,
	StatusApproved:  3,
	StatusArchived:  4,
}

func (s Status) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransitionTo reports whether `next` is a forward move in the
// draft -> completed -> approved -> archived progression.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return statusOrder[next] > statusOrder[s]
}

type (
	// SubTheme is a scored sub-item of a Theme. Its Stage is always
	// derived from Score; the two never disagree.
	SubTheme struct {
		Code           string     `json:"code"`
		Name           string     `json:"name"`
		Description    string     `json:"description"`
		Score          float64    `json:"score"` // 0-100, continuous
		Stage          StageLabel `json:"stage"`
		Evidence       []string   `json:"evidence"`
		LastAssessedAt time.Time  `json:"last_assessed_at"` // UTC
	}

	// Theme is one of the fixed catalog themes with its sub-themes and
	// derived overall score/stage.
	Theme struct {
		Code         string     `json:"code"`
		Name         string     `json:"name"`
		Description  string     `json:"description"`
		SubThemes    []SubTheme `json:"sub_themes"`
		OverallScore int        `json:"overall_score"`
		Stage        StageLabel `json:"stage"`
	}

	// CrossCuttingTheme is a flat, assessment-level scored dimension.
	// It informs recommendations but never moves the headline score.
	CrossCuttingTheme struct {
		Code           string     `json:"code"`
		Name           string     `json:"name"`
		Description    string     `json:"description"`
		Score          float64    `json:"score"`
		Stage          StageLabel `json:"stage"`
		Evidence       []string   `json:"evidence"`
		Notes          string     `json:"notes"`
		LastAssessedAt time.Time  `json:"last_assessed_at"` // UTC
	}

	// Assessor identifies who carried out an assessment.
	Assessor struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Email string `json:"email"`
	}

	// PolicyAssessment is the aggregate root: a full SABER-ICT policy
	// maturity assessment with all derived fields kept consistent by
	// the service on every mutation.
	PolicyAssessment struct {
		ID              string              `json:"id"`
		ScopeLevel      ScopeLevel          `json:"scope_level"`
		ScopeRef        string              `json:"scope_ref,omitempty"` // ID/name of the scoped school or district
		Assessor        Assessor            `json:"assessor"`
		Date            time.Time           `json:"date"` // UTC
		Themes          []Theme             `json:"themes"`
		CrossCutting    []CrossCuttingTheme `json:"cross_cutting"`
		OverallScore    int                 `json:"overall_score"`
		OverallStage    StageLabel          `json:"overall_stage"`
		Recommendations []Recommendation    `json:"recommendations"`
		Status          Status              `json:"status"`
		CreatedAt       time.Time           `json:"created_at"` // UTC
		UpdatedAt       time.Time           `json:"updated_at"` // UTC
	}
)

// NewFromCatalog builds a fully populated draft assessment from the catalog,
// all scores at 0 (Latent). Derived fields are consistent from the start.
func NewFromCatalog(cat Catalog, scope ScopeLevel, scopeRef string, assessor Assessor, date time.Time) PolicyAssessment {
	themes := make([]Theme, 0, len(cat.Themes))
	for _, td := range cat.Themes {
		subs := make([]SubTheme, 0, len(td.SubThemes))
		for _, sd := range td.SubThemes {
			subs = append(subs, SubTheme{
				Code:        sd.Code,
				Name:        sd.Name,
				Description: sd.Description,
				Stage:       StageLatent,
			})
		}
		themes = append(themes, Theme{
			Code:        td.Code,
			Name:        td.Name,
			Description: td.Description,
			SubThemes:   subs,
			Stage:       StageLatent,
		})
	}

	crossCutting := make([]CrossCuttingTheme, 0, len(cat.CrossCutting))
	for _, cd := range cat.CrossCutting {
		crossCutting = append(crossCutting, CrossCuttingTheme{
			Code:        cd.Code,
			Name:        cd.Name,
			Description: cd.Description,
			Stage:       StageLatent,
		})
	}

	a := PolicyAssessment{
		ScopeLevel:   scope,
		ScopeRef:     scopeRef,
		Assessor:     assessor,
		Date:         date,
		Themes:       themes,
		CrossCutting: crossCutting,
		Status:       StatusDraft,
	}
	Reaggregate(&a)
	return a
}

// Theme returns a pointer to the theme with the given code, or nil.
func (a *PolicyAssessment) Theme(code string) *Theme {
	for i := range a.Themes {
		if a.Themes[i].Code == code {
			return &a.Themes[i]
		}
	}
	return nil
}

// SubTheme returns a pointer to the sub-theme with the given code, or nil.
func (t *Theme) SubTheme(code string) *SubTheme {
	for i := range t.SubThemes {
		if t.SubThemes[i].Code == code {
			return &t.SubThemes[i]
		}
	}
	return nil
}

// CrossCuttingTheme returns a pointer to the cross-cutting theme with the
// given code, or nil.
func (a *PolicyAssessment) CrossCuttingTheme(code string) *CrossCuttingTheme {
	for i := range a.CrossCutting {
		if a.CrossCutting[i].Code == code {
			return &a.CrossCutting[i]
		}
	}
	return nil
}
