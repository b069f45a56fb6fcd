package assessment

import "sort"

// Priority of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityWeights = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

func (p Priority) Weight() int {
	return priorityWeights[p]
}

// Recommendation is a derived, templated improvement suggestion. It is fully
// regenerated on every aggregation pass and carries no stable identity.
type Recommendation struct {
	ThemeCode      string   `json:"theme_code"`
	Priority       Priority `json:"priority"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Actions        []string `json:"actions"`
	Timeline       string   `json:"timeline"`
	Resources      []string `json:"resources"`
	ExpectedImpact string   `json:"expected_impact"`
}

// recTemplate is the fixed per-theme recommendation content; the priority is
// filled in from the theme's stage at synthesis time.
type recTemplate struct {
	Title          string
	Description    string
	Actions        []string
	Timeline       string
	Resources      []string
	ExpectedImpact string
}

var themeRecTemplates = map[string]recTemplate{
	"1": {
		Title:       "Formalize the ICT in Education Vision",
		Description: "Establish an explicit, funded and institutionally anchored vision for ICT use in primary schools.",
		Actions: []string{
			"Draft and publish a national/institutional ICT in education vision statement",
			"Align the ICT plan with the current education sector plan",
			"Secure a dedicated recurring budget line for school ICT",
			"Assign a coordinating body with a clear mandate",
		},
		Timeline:       "6-12 months",
		Resources:      []string{"Policy drafting team", "Ministry of Education leadership", "Budget allocation"},
		ExpectedImpact: "A shared direction that makes all downstream ICT investments coherent and sustainable.",
	},
	"2": {
		Title:       "Close the Infrastructure Gap",
		Description: "Bring electricity, devices, connectivity and maintenance arrangements to the schools that lack them.",
		Actions: []string{
			"Audit power, device and connectivity status across schools",
			"Prioritize underserved schools in procurement rounds",
			"Contract or train local technical support capacity",
			"Establish a refresh and maintenance schedule",
		},
		Timeline:       "12-24 months",
		Resources:      []string{"Infrastructure budget", "Procurement unit", "Local technicians"},
		ExpectedImpact: "Working equipment in classrooms instead of storerooms, enabling everything else.",
	},
	"3": {
		Title:       "Invest in Teacher Capacity",
		Description: "Train and support teachers so available technology is actually used for learning.",
		Actions: []string{
			"Integrate ICT pedagogy into pre-service teacher training",
			"Run recurring in-service training tied to classroom practice",
			"Adopt teacher ICT competency standards",
			"Seed peer networks and school-level champions",
		},
		Timeline:       "12-18 months",
		Resources:      []string{"Teacher training institutes", "Training budget", "Competency framework"},
		ExpectedImpact: "Teachers who integrate ICT into daily teaching rather than treating it as a separate subject.",
	},
	"4": {
		Title:       "Define Student Digital Skills",
		Description: "Embed digital literacy in the curriculum with clear competency targets per grade.",
		Actions: []string{
			"Map digital literacy outcomes into the primary curriculum",
			"Publish per-grade student ICT competency standards",
			"Provide assessment instruments for digital skills",
			"Connect primary ICT skills to secondary pathways",
		},
		Timeline:       "9-18 months",
		Resources:      []string{"Curriculum development unit", "Assessment specialists"},
		ExpectedImpact: "Measurable digital skills for every learner, not just those in well-equipped schools.",
	},
	"5": {
		Title:       "Build the Digital Content Base",
		Description: "Make curriculum-aligned digital learning resources available, curated and locally relevant.",
		Actions: []string{
			"Inventory existing digital content against the curriculum",
			"Set quality standards and a curation process",
			"Commission content in local languages",
			"Distribute content through low-bandwidth channels",
		},
		Timeline:       "9-15 months",
		Resources:      []string{"Content budget", "Curriculum specialists", "Local publishers"},
		ExpectedImpact: "Teachers and learners with something worth using on the devices they have.",
	},
	"6": {
		Title:       "Strengthen EMIS Foundations",
		Description: "Collect reliable school data and get it back to the people who can act on it.",
		Actions: []string{
			"Standardize school-level data collection instruments",
			"Automate aggregation into the central EMIS",
			"Return school report cards to head teachers",
			"Train planners in data-driven decision making",
		},
		Timeline:       "12-18 months",
		Resources:      []string{"EMIS unit", "Data collection tools", "Training budget"},
		ExpectedImpact: "Decisions about schools grounded in current data rather than anecdote.",
	},
	"7": {
		Title:       "Establish Monitoring and Evaluation",
		Description: "Put an M&E framework around ICT initiatives so pilots produce evidence, not just activity.",
		Actions: []string{
			"Define indicators for ICT in education programs",
			"Baseline current ICT use and outcomes",
			"Evaluate pilots before scaling",
			"Publish evaluation results",
		},
		Timeline:       "6-12 months",
		Resources:      []string{"M&E specialists", "Research partners"},
		ExpectedImpact: "Scaling what works and stopping what does not.",
	},
	"8": {
		Title:       "Make ICT Access Equitable and Safe",
		Description: "Ensure ICT benefits reach girls, rural schools and learners with disabilities, safely.",
		Actions: []string{
			"Track access and usage gaps by gender and location",
			"Target investments at underserved schools",
			"Procure assistive technologies for learners with disabilities",
			"Adopt child online protection policies",
		},
		Timeline:       "12-24 months",
		Resources:      []string{"Equity-targeted budget", "Safeguarding policies", "Assistive technology"},
		ExpectedImpact: "ICT that narrows learning gaps instead of widening them.",
	},
}

// genericSubThemeActions is the fixed action template for low-scoring
// sub-themes.
var genericSubThemeActions = []string{
	"Assess current state",
	"Develop improvement plan",
	"Implement targeted interventions",
	"Monitor and adjust",
}

// Synthesize regenerates the full recommendation list for an assessment.
//
// For each theme in catalog order: if the theme's stage is Latent or
// Emerging, one theme-level recommendation is emitted from the fixed
// per-theme template, high priority for Latent and medium for Emerging,
// followed by one generic medium-priority recommendation for each of that
// theme's sub-themes scoring strictly below 50. The result is then
// stable-sorted descending by priority weight, so ties keep emission order.
// A theme code missing from the template table is skipped.
func Synthesize(a *PolicyAssessment) []Recommendation {
	recs := make([]Recommendation, 0, len(a.Themes))

	for _, t := range a.Themes {
		score := ThemeScore(t)
		stage := ScoreToStage(float64(score))

		if stage == StageLatent || stage == StageEmerging {
			if tmpl, ok := themeRecTemplates[t.Code]; ok {
				priority := PriorityMedium
				if stage == StageLatent {
					priority = PriorityHigh
				}
				recs = append(recs, Recommendation{
					ThemeCode:      t.Code,
					Priority:       priority,
					Title:          tmpl.Title,
					Description:    tmpl.Description,
					Actions:        tmpl.Actions,
					Timeline:       tmpl.Timeline,
					Resources:      tmpl.Resources,
					ExpectedImpact: tmpl.ExpectedImpact,
				})
			}
		}

		for _, st := range t.SubThemes {
			if st.Score < 50 {
				recs = append(recs, Recommendation{
					ThemeCode:      t.Code,
					Priority:       PriorityMedium,
					Title:          "Improve " + st.Name,
					Description:    st.Description,
					Actions:        genericSubThemeActions,
					Timeline:       "3-6 months",
					Resources:      []string{"School leadership", "District support"},
					ExpectedImpact: "Raises " + st.Name + " toward an established level of maturity.",
				})
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Weight() > recs[j].Priority.Weight()
	})
	return recs
}
