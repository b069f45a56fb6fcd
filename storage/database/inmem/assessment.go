package inmemdb

import (
	"sort"
	"strings"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/assessment"
)

type assessmentRepository struct {
	db *assessmentTable
}

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

// query returns all assessments in insertion order. Callers hold the table lock.
func (repo *assessmentRepository) query() []assessment.PolicyAssessment {
	assessments := make([]assessment.PolicyAssessment, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if a, ok := repo.db.table[id]; ok {
			assessments = append(assessments, *a)
		}
	}
	return assessments
}

func (repo *assessmentRepository) CreateAssessment(a assessment.PolicyAssessment) (assessment.PolicyAssessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[a.ID] = &a
	repo.db.order = append(repo.db.order, a.ID)
	return a, nil
}

func (repo *assessmentRepository) GetAssessmentByID(id string) (assessment.PolicyAssessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return assessment.PolicyAssessment{}, assessment.ErrNotFound
}

func (repo *assessmentRepository) QueryAllAssessments() ([]assessment.PolicyAssessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *assessmentRepository) FilterAssessments(filter assessment.QueryFilter, orderings []core.DBOrdering) ([]assessment.PolicyAssessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matched := make([]assessment.PolicyAssessment, 0)
	for _, a := range repo.query() {
		if matchesAssessment(a, filter) {
			matched = append(matched, a)
		}
	}
	orderAssessments(matched, orderings)
	return matched, nil
}

func (repo *assessmentRepository) UpdateAssessment(a assessment.PolicyAssessment) (assessment.PolicyAssessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[a.ID]; !ok {
		return assessment.PolicyAssessment{}, assessment.ErrNotFound
	}
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assessmentRepository) DeleteAssessmentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func matchesAssessment(a assessment.PolicyAssessment, filter assessment.QueryFilter) bool {
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !(strings.Contains(strings.ToLower(a.ScopeRef), search) ||
			strings.Contains(strings.ToLower(a.Assessor.Name), search) ||
			strings.Contains(strings.ToLower(a.Assessor.Email), search)) {
			return false
		}
	}
	if filter.ScopeLevel != "" && string(a.ScopeLevel) != filter.ScopeLevel {
		return false
	}
	if filter.ScopeRef != "" && a.ScopeRef != filter.ScopeRef {
		return false
	}
	if filter.Status != "" && string(a.Status) != filter.Status {
		return false
	}
	if filter.AssessorEmail != "" && a.Assessor.Email != filter.AssessorEmail {
		return false
	}
	if !filter.DateFrom.IsZero() && a.Date.Before(filter.DateFrom) {
		return false
	}
	if !filter.DateTo.IsZero() && a.Date.After(filter.DateTo) {
		return false
	}
	return true
}

func orderAssessments(assessments []assessment.PolicyAssessment, orderings []core.DBOrdering) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(assessments, func(i, j int) bool {
		for _, ord := range orderings {
			cmp := compareAssessments(assessments[i], assessments[j], ord.Field)
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

func compareAssessments(a, b assessment.PolicyAssessment, field string) int {
	switch field {
	case "date":
		return compareTimes(a.Date, b.Date)
	case "scope_level":
		return strings.Compare(string(a.ScopeLevel), string(b.ScopeLevel))
	case "scope_ref":
		return strings.Compare(a.ScopeRef, b.ScopeRef)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "overall_score":
		switch {
		case a.OverallScore == b.OverallScore:
			return 0
		case a.OverallScore < b.OverallScore:
			return -1
		default:
			return 1
		}
	case "created_at":
		return compareTimes(a.CreatedAt, b.CreatedAt)
	default:
		return 0
	}
}
