package assessment

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core"
)

var (
	// errors
	ErrNotFound        = errors.New("assessment not found")
	ErrUnknownTheme    = errors.New("unknown theme code")
	ErrUnknownSubTheme = errors.New("unknown sub-theme code")
	ErrUnknownCrossCut = errors.New("unknown cross-cutting theme code")
)

type (
	Repository interface {
		CreateAssessment(a PolicyAssessment) (PolicyAssessment, error)
		GetAssessmentByID(id string) (PolicyAssessment, error)
		QueryAllAssessments() ([]PolicyAssessment, error)
		// FilterAssessments applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of ScopeRef,
		// Assessor.Name or Assessor.Email.
		FilterAssessments(filter QueryFilter, orderings []core.DBOrdering) ([]PolicyAssessment, error)
		UpdateAssessment(a PolicyAssessment) (PolicyAssessment, error)
		DeleteAssessmentsByID(ids ...string) error
	}

	Service struct {
		catalog Catalog
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		catalog: DefaultCatalog(),
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Catalog returns the taxonomy assessments are initialized from.
func (svc *Service) Catalog() Catalog {
	return svc.catalog
}

func (svc *Service) Create(na NewAssessment) (PolicyAssessment, error) {
	now := time.Now().UTC()

	date := na.Date
	if date.IsZero() {
		date = now
	}

	a := NewFromCatalog(
		svc.catalog,
		ScopeLevel(na.ScopeLevel),
		na.ScopeRef,
		Assessor{Name: na.AssessorName, Role: na.AssessorRole, Email: na.AssessorEmail},
		date.UTC(),
	)
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now
	return svc.repo.CreateAssessment(a)
}

func (svc *Service) QueryAll() ([]PolicyAssessment, error) {
	return svc.repo.QueryAllAssessments()
}

func (svc *Service) GetByID(id string) (PolicyAssessment, error) {
	return svc.repo.GetAssessmentByID(id)
}

func (svc *Service) Filter(filter QueryFilter, orderings []core.DBOrdering) ([]PolicyAssessment, error) {
	return svc.repo.FilterAssessments(filter, orderings)
}

// SetSubThemeScore sets a sub-theme's continuous score and synchronously
// recomputes every derived field before the assessment is persisted.
func (svc *Service) SetSubThemeScore(id, themeCode, subCode string, score float64, evidence string) (PolicyAssessment, error) {
	return svc.mutate(id, func(a *PolicyAssessment) error {
		t := a.Theme(themeCode)
		if t == nil {
			return core.NewValidationError(ErrUnknownTheme, core.FieldError{Field: "theme_code", Error: ErrUnknownTheme.Error()})
		}
		st := t.SubTheme(subCode)
		if st == nil {
			return core.NewValidationError(ErrUnknownSubTheme, core.FieldError{Field: "sub_theme_code", Error: ErrUnknownSubTheme.Error()})
		}
		st.Score = score
		st.LastAssessedAt = time.Now().UTC()
		if evidence != "" {
			st.Evidence = append(st.Evidence, evidence)
		}
		return nil
	})
}

// SetSubThemeStage snaps a sub-theme's score to the stage's anchor value.
func (svc *Service) SetSubThemeStage(id, themeCode, subCode string, stage StageLabel, evidence string) (PolicyAssessment, error) {
	return svc.SetSubThemeScore(id, themeCode, subCode, StageToScore(stage), evidence)
}

func (svc *Service) SetCrossCuttingScore(id, code string, score float64, evidence string) (PolicyAssessment, error) {
	return svc.mutate(id, func(a *PolicyAssessment) error {
		ct := a.CrossCuttingTheme(code)
		if ct == nil {
			return core.NewValidationError(ErrUnknownCrossCut, core.FieldError{Field: "cross_cutting_code", Error: ErrUnknownCrossCut.Error()})
		}
		ct.Score = score
		ct.LastAssessedAt = time.Now().UTC()
		if evidence != "" {
			ct.Evidence = append(ct.Evidence, evidence)
		}
		return nil
	})
}

func (svc *Service) SetCrossCuttingStage(id, code string, stage StageLabel, evidence string) (PolicyAssessment, error) {
	return svc.SetCrossCuttingScore(id, code, StageToScore(stage), evidence)
}

// UpdateStatus moves the assessment along the draft -> completed -> approved
// -> archived progression; backward moves are rejected. Approval notifies
// the assessor by email.
func (svc *Service) UpdateStatus(id string, next Status) (PolicyAssessment, error) {
	a, err := svc.mutate(id, func(a *PolicyAssessment) error {
		if !a.Status.CanTransitionTo(next) {
			err := fmt.Errorf("cannot move assessment from %q to %q", a.Status, next)
			return core.NewValidationError(err, core.FieldError{Field: "status", Error: err.Error()})
		}
		a.Status = next
		return nil
	})
	if err != nil {
		return a, err
	}

	if next == StatusApproved && a.Assessor.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: a.Assessor.Name, Address: a.Assessor.Email}},
			Subject:      "Assessment Approved",
			TemplateName: "assessment-approved",
			TemplateData: struct {
				ID             string
				AssessorName   string
				AssessmentDate string
				Stage          string
				Score          int
			}{
				ID:             a.ID,
				AssessorName:   a.Assessor.Name,
				AssessmentDate: a.Date.Format("2 Jan 2006"),
				Stage:          a.OverallStage.Name(),
				Score:          a.OverallScore,
			},
		})
	}
	return a, nil
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteAssessmentsByID(ids...)
}

// Recommendations returns the assessment's current derived recommendation
// list.
func (svc *Service) Recommendations(id string) ([]Recommendation, error) {
	a, err := svc.repo.GetAssessmentByID(id)
	if err != nil {
		return nil, err
	}
	return a.Recommendations, nil
}

// Trends projects the filtered assessments into date-ordered charting points.
func (svc *Service) Trends(filter QueryFilter) ([]TrendPoint, error) {
	assessments, err := svc.repo.FilterAssessments(filter, nil)
	if err != nil {
		return nil, err
	}
	return Trend(assessments), nil
}

// mutate loads an assessment, applies fn, reaggregates all derived fields and
// persists the result. Recommendations are regenerated before anything
// downstream can observe the new scores.
func (svc *Service) mutate(id string, fn func(*PolicyAssessment) error) (PolicyAssessment, error) {
	a, err := svc.repo.GetAssessmentByID(id)
	if err != nil {
		return PolicyAssessment{}, err
	}
	if err := fn(&a); err != nil {
		return PolicyAssessment{}, err
	}
	Reaggregate(&a)
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAssessment(a)
}
