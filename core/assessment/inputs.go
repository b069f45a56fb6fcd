package assessment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shulelabs/shule/core"
)

// NewAssessment contains information needed to create a new PolicyAssessment.
type NewAssessment struct {
	ScopeLevel    string    `json:"scope_level" validate:"required,scopelevel"`
	ScopeRef      string    `json:"scope_ref"`
	AssessorName  string    `json:"assessor_name" validate:"required"`
	AssessorRole  string    `json:"assessor_role"`
	AssessorEmail string    `json:"assessor_email" validate:"required,email"`
	Date          time.Time `json:"date"`
}

func (na *NewAssessment) Validate(validate *validator.Validate) error {
	na.ScopeLevel = core.CleanString(na.ScopeLevel, true /* lower */)
	na.ScopeRef = core.CleanString(na.ScopeRef)
	na.AssessorName = core.CleanString(na.AssessorName)
	na.AssessorRole = core.CleanString(na.AssessorRole)
	na.AssessorEmail = core.CleanString(na.AssessorEmail, true /* lower */)
	return validate.Struct(na)
}

// ScoreUpdate carries one score mutation: either a sub-theme (theme code +
// sub-theme code) or a cross-cutting theme (cross-cutting code), and either a
// continuous score or a stage shortcut that snaps to the stage's anchor.
type ScoreUpdate struct {
	ThemeCode        string   `json:"theme_code" validate:"required_with=SubThemeCode"`
	SubThemeCode     string   `json:"sub_theme_code"`
	CrossCuttingCode string   `json:"cross_cutting_code"`
	Score            *float64 `json:"score" validate:"omitempty,min=0,max=100"`
	Stage            string   `json:"stage" validate:"omitempty,stagelabel"`
	Evidence         string   `json:"evidence"`
}

func (su *ScoreUpdate) Validate(validate *validator.Validate) error {
	su.ThemeCode = core.CleanString(su.ThemeCode)
	su.SubThemeCode = core.CleanString(su.SubThemeCode)
	su.CrossCuttingCode = core.CleanString(su.CrossCuttingCode)
	su.Stage = core.CleanString(su.Stage, true /* lower */)
	su.Evidence = core.CleanString(su.Evidence)
	return validate.Struct(su)
}

// IsCrossCutting reports whether the update targets a cross-cutting theme.
func (su *ScoreUpdate) IsCrossCutting() bool {
	return su.CrossCuttingCode != ""
}

// StatusUpdate carries a workflow status transition request.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,assessmentstatus"`
}

func (stu *StatusUpdate) Validate(validate *validator.Validate) error {
	stu.Status = core.CleanString(stu.Status, true /* lower */)
	return validate.Struct(stu)
}

// QueryFilter narrows assessment queries; zero-valued fields are ignored.
type QueryFilter struct {
	Search        string    `query:"search"`
	ScopeLevel    string    `query:"scope_level"`
	ScopeRef      string    `query:"scope_ref"`
	Status        string    `query:"status"`
	AssessorEmail string    `query:"assessor_email"`
	DateFrom      time.Time `query:"date_from"`
	DateTo        time.Time `query:"date_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.ScopeLevel == "" && qf.ScopeRef == "" && qf.Status == "" &&
		qf.AssessorEmail == "" && qf.DateFrom.IsZero() && qf.DateTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.ScopeLevel = core.CleanString(qf.ScopeLevel, true /* lower */)
	qf.ScopeRef = core.CleanString(qf.ScopeRef)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.AssessorEmail = core.CleanString(qf.AssessorEmail, true /* lower */)
}
