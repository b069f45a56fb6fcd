package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/user"
)

var userOrderFields = map[string]bool{
	"name":       true,
	"username":   true,
	"email":      true,
	"role":       true,
	"is_active":  true,
	"created_at": true,
	"last_login": true,
}

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	IsActive     bool      `db:"is_active"`
	Role         string    `db:"role"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	LastLogin    time.Time `db:"last_login"`
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		IsActive:     r.IsActive,
		Role:         user.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		LastLogin:    r.LastLogin,
	}
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	exclIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}

	exists := func(field, value string) (bool, error) {
		if value == "" {
			return false, nil
		}
		query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM app_user WHERE %s = ?)", field)
		args := []interface{}{value}
		if len(exclIDs) > 0 {
			query = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM app_user WHERE %s = ? AND id NOT IN (?))", field)
			var err error
			query, args, err = sqlx.In(query, value, exclIDs)
			if err != nil {
				return false, err
			}
		}
		var found bool
		err := repo.db.Get(&found, repo.db.Rebind(query), args...)
		return found, err
	}

	if found, err := exists("username", username); err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	} else if found {
		return user.ErrUsernameExists
	}
	if found, err := exists("email", email); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	} else if found {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	const query = `
		INSERT INTO app_user (id, name, username, email, is_active, role, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :name, :username, :email, :is_active, :role, :password_hash, :created_at, :updated_at, :last_login)`
	row := userRow{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     usr.Username,
		Email:        usr.Email,
		IsActive:     usr.IsActive,
		Role:         string(usr.Role),
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
		LastLogin:    usr.LastLogin,
	}
	if _, err := repo.db.NamedExec(query, row); err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, "SELECT * FROM app_user ORDER BY created_at"); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return rowsToUsers(rows), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getUser("SELECT * FROM app_user WHERE id = $1", id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getUser("SELECT * FROM app_user WHERE username = $1", username)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getUser("SELECT * FROM app_user WHERE email = $1", email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getUser("SELECT * FROM app_user WHERE username = $1 OR email = $1", username)
}

func (repo *userRepository) getUser(query string, args ...interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter, orderings []core.DBOrdering) ([]user.User, error) {
	query := "SELECT * FROM app_user"
	var conds []string
	var args []interface{}

	if filter.Search != "" {
		conds = append(conds, "(name ILIKE ? OR username ILIKE ? OR email ILIKE ?)")
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}
	if filter.Roles != nil {
		conds = append(conds, "role IN (?)")
		args = append(args, filter.Roles)
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, filter.CreatedTo)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(orderings, userOrderFields)

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "building users query")
	}

	var rows []userRow
	if err := repo.db.Select(&rows, repo.db.Rebind(query), inArgs...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return rowsToUsers(rows), nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	sets := []string{"updated_at = :updated_at"}
	params := map[string]interface{}{
		"id":         usr.ID,
		"updated_at": usr.UpdatedAt,
	}
	if usr.Name != "" {
		sets = append(sets, "name = :name")
		params["name"] = usr.Name
	}
	if usr.Username != "" {
		sets = append(sets, "username = :username")
		params["username"] = usr.Username
	}
	if usr.Email != "" {
		sets = append(sets, "email = :email")
		params["email"] = usr.Email
	}
	if usr.Role != "" {
		sets = append(sets, "role = :role")
		params["role"] = string(usr.Role)
	}
	if usr.PasswordHash != nil {
		sets = append(sets, "password_hash = :password_hash")
		params["password_hash"] = usr.PasswordHash
	}
	if !usr.LastLogin.IsZero() {
		sets = append(sets, "last_login = :last_login")
		params["last_login"] = usr.LastLogin
	}
	if isActive != nil {
		sets = append(sets, "is_active = :is_active")
		params["is_active"] = *isActive
	}

	query := "UPDATE app_user SET " + strings.Join(sets, ", ") + " WHERE id = :id"
	res, err := repo.db.NamedExec(query, params)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM app_user WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting users")
}

func rowsToUsers(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users
}

// orderClause renders a safe ORDER BY from the whitelisted ordering fields.
func orderClause(orderings []core.DBOrdering, allowed map[string]bool) string {
	parts := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		if allowed[ord.Field] {
			parts = append(parts, ord.String())
		}
	}
	if len(parts) == 0 {
		return " ORDER BY created_at"
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
