package inmemdb

import (
	"sync"

	"github.com/shulelabs/shule/core/assessment"
	"github.com/shulelabs/shule/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
		order []string // insertion order, for deterministic queries
	}

	assessmentTable struct {
		mutex sync.RWMutex
		table map[string]*assessment.PolicyAssessment
		order []string
	}

	// DB is a process-local store; repositories share its tables.
	DB struct {
		user       *userTable
		assessment *assessmentTable
	}
)

func NewDB() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		assessment: &assessmentTable{table: make(map[string]*assessment.PolicyAssessment)},
	}
}
