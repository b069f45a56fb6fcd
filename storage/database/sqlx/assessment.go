package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/assessment"
)

var assessmentOrderFields = map[string]bool{
	"date":          true,
	"scope_level":   true,
	"scope_ref":     true,
	"status":        true,
	"overall_score": true,
	"created_at":    true,
}

type assessmentRow struct {
	ID            string    `db:"id"`
	ScopeLevel    string    `db:"scope_level"`
	ScopeRef      string    `db:"scope_ref"`
	AssessorName  string    `db:"assessor_name"`
	AssessorRole  string    `db:"assessor_role"`
	AssessorEmail string    `db:"assessor_email"`
	Date          time.Time `db:"date"`
	Themes        []byte    `db:"themes"`
	CrossCutting  []byte    `db:"cross_cutting"`
	OverallScore  int       `db:"overall_score"`
	OverallStage  string    `db:"overall_stage"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func newAssessmentRow(a assessment.PolicyAssessment) (assessmentRow, error) {
	themes, err := json.Marshal(a.Themes)
	if err != nil {
		return assessmentRow{}, errors.Wrap(err, "marshalling themes")
	}
	crossCutting, err := json.Marshal(a.CrossCutting)
	if err != nil {
		return assessmentRow{}, errors.Wrap(err, "marshalling cross-cutting themes")
	}
	return assessmentRow{
		ID:            a.ID,
		ScopeLevel:    string(a.ScopeLevel),
		ScopeRef:      a.ScopeRef,
		AssessorName:  a.Assessor.Name,
		AssessorRole:  a.Assessor.Role,
		AssessorEmail: a.Assessor.Email,
		Date:          a.Date,
		Themes:        themes,
		CrossCutting:  crossCutting,
		OverallScore:  a.OverallScore,
		OverallStage:  string(a.OverallStage),
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}, nil
}

// toAssessment rebuilds the aggregate; derived fields (scores, stages,
// recommendations) are recomputed from the stored sub-theme data rather
// than trusted from the row.
func (r assessmentRow) toAssessment() (assessment.PolicyAssessment, error) {
	a := assessment.PolicyAssessment{
		ID:         r.ID,
		ScopeLevel: assessment.ScopeLevel(r.ScopeLevel),
		ScopeRef:   r.ScopeRef,
		Assessor: assessment.Assessor{
			Name:  r.AssessorName,
			Role:  r.AssessorRole,
			Email: r.AssessorEmail,
		},
		Date:      r.Date,
		Status:    assessment.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Themes, &a.Themes); err != nil {
		return a, errors.Wrap(err, "unmarshalling themes")
	}
	if err := json.Unmarshal(r.CrossCutting, &a.CrossCutting); err != nil {
		return a, errors.Wrap(err, "unmarshalling cross-cutting themes")
	}
	assessment.Reaggregate(&a)
	return a, nil
}

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

const assessmentInsert = `
	INSERT INTO policy_assessment (id, scope_level, scope_ref, assessor_name, assessor_role, assessor_email,
		date, themes, cross_cutting, overall_score, overall_stage, status, created_at, updated_at)
	VALUES (:id, :scope_level, :scope_ref, :assessor_name, :assessor_role, :assessor_email,
		:date, :themes, :cross_cutting, :overall_score, :overall_stage, :status, :created_at, :updated_at)`

func (repo *assessmentRepository) CreateAssessment(a assessment.PolicyAssessment) (assessment.PolicyAssessment, error) {
	row, err := newAssessmentRow(a)
	if err != nil {
		return assessment.PolicyAssessment{}, err
	}
	if _, err := repo.db.NamedExec(assessmentInsert, row); err != nil {
		return assessment.PolicyAssessment{}, errors.Wrap(err, "creating assessment")
	}
	return a, nil
}

func (repo *assessmentRepository) GetAssessmentByID(id string) (assessment.PolicyAssessment, error) {
	var row assessmentRow
	if err := repo.db.Get(&row, "SELECT * FROM policy_assessment WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return assessment.PolicyAssessment{}, assessment.ErrNotFound
		}
		return assessment.PolicyAssessment{}, errors.Wrap(err, "getting assessment")
	}
	return row.toAssessment()
}

func (repo *assessmentRepository) QueryAllAssessments() ([]assessment.PolicyAssessment, error) {
	var rows []assessmentRow
	if err := repo.db.Select(&rows, "SELECT * FROM policy_assessment ORDER BY created_at"); err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}
	return rowsToAssessments(rows)
}

func (repo *assessmentRepository) FilterAssessments(filter assessment.QueryFilter, orderings []core.DBOrdering) ([]assessment.PolicyAssessment, error) {
	query := "SELECT * FROM policy_assessment"
	var conds []string
	var args []interface{}

	if filter.Search != "" {
		conds = append(conds, "(scope_ref ILIKE ? OR assessor_name ILIKE ? OR assessor_email ILIKE ?)")
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}
	if filter.ScopeLevel != "" {
		conds = append(conds, "scope_level = ?")
		args = append(args, filter.ScopeLevel)
	}
	if filter.ScopeRef != "" {
		conds = append(conds, "scope_ref = ?")
		args = append(args, filter.ScopeRef)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.AssessorEmail != "" {
		conds = append(conds, "assessor_email = ?")
		args = append(args, filter.AssessorEmail)
	}
	if !filter.DateFrom.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, filter.DateTo)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(orderings, assessmentOrderFields)

	var rows []assessmentRow
	if err := repo.db.Select(&rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering assessments")
	}
	return rowsToAssessments(rows)
}

const assessmentUpdate = `
	UPDATE policy_assessment
	SET scope_level = :scope_level, scope_ref = :scope_ref, assessor_name = :assessor_name,
		assessor_role = :assessor_role, assessor_email = :assessor_email, date = :date,
		themes = :themes, cross_cutting = :cross_cutting, overall_score = :overall_score,
		overall_stage = :overall_stage, status = :status, updated_at = :updated_at
	WHERE id = :id`

func (repo *assessmentRepository) UpdateAssessment(a assessment.PolicyAssessment) (assessment.PolicyAssessment, error) {
	row, err := newAssessmentRow(a)
	if err != nil {
		return assessment.PolicyAssessment{}, err
	}
	res, err := repo.db.NamedExec(assessmentUpdate, row)
	if err != nil {
		return assessment.PolicyAssessment{}, errors.Wrap(err, "updating assessment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assessment.PolicyAssessment{}, assessment.ErrNotFound
	}
	return a, nil
}

func (repo *assessmentRepository) DeleteAssessmentsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM policy_assessment WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting assessments")
}

func rowsToAssessments(rows []assessmentRow) ([]assessment.PolicyAssessment, error) {
	assessments := make([]assessment.PolicyAssessment, 0, len(rows))
	for _, r := range rows {
		a, err := r.toAssessment()
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}
