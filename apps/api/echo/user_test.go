package echoapi

import (
	"net/http"
	"testing"

	"github.com/shulelabs/shule/core/user"
	emailsvc "github.com/shulelabs/shule/services/email"
)

func TestUserLogin(t *testing.T) {
	app := setup(t)
	app.createUser(t, "awiti", user.RolePrincipal)

	inactive := app.createUser(t, "dormant", user.RoleTeacher)
	off := false
	if _, err := app.usrSvc.Update(inactive.ID, user.UpdateUser{IsActive: &off}); err != nil {
		t.Fatalf("deactivating user failed: %v", err)
	}

	tests := []httpTest{
		{
			name:     "valid credentials",
			body:     []byte(`{"username": "awiti", "password": "Str0ng#Pass!"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "email works as username",
			body:     []byte(`{"username": "awiti@test.test", "password": "Str0ng#Pass!"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     []byte(`{"username": "awiti", "password": "nope"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown user",
			body:     []byte(`{"username": "ghost", "password": "Str0ng#Pass!"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deactivated account",
			body:     []byte(`{"username": "dormant", "password": "Str0ng#Pass!"}`),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing fields",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				var resp LoginResponse
				decodeBody(t, rec, &resp)
				if resp.Token == "" {
					t.Error("login returned an empty token")
				}
			}
		})
	}
}

func TestUserTokenRefresh(t *testing.T) {
	app := setup(t)
	usr := app.createUser(t, "awiti", user.RolePrincipal)
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", token)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Error("refresh returned an empty token")
	}

	// no token
	req, rec = newRequest(http.MethodPost, "/v1/users/token-refresh")
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %v, want 401", rec.Code)
	}
}

func TestUserRegister(t *testing.T) {
	app := setup(t)
	ministry := app.createUser(t, "ministry1", user.RoleMinistry)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)

	body := []byte(`{
		"name": "New Principal", "username": "principal1", "email": "principal1@test.test",
		"role": "principal", "password": "Str0ng#Pass!", "password_confirm": "Str0ng#Pass!"
	}`)

	tests := []httpTest{
		{name: "anonymous", body: body, wantCode: http.StatusUnauthorized},
		{name: "teacher cannot register users", body: body, token: getToken(t, teacher), wantCode: http.StatusForbidden},
		{name: "ministry registers a principal", body: body, token: getToken(t, ministry), wantCode: http.StatusCreated},
		{
			name: "cannot grant a role above own",
			body: []byte(`{
				"name": "Sneaky", "username": "sneaky1", "email": "sneaky@test.test",
				"role": "super", "password": "Str0ng#Pass!", "password_confirm": "Str0ng#Pass!"
			}`),
			token:    getToken(t, ministry),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate username",
			body:     body,
			token:    getToken(t, ministry),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}
}

func TestUserQuery(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)
	app.createUser(t, "teacher1", user.RoleTeacher)
	app.createUser(t, "teacher2", user.RoleTeacher)

	req, rec := newAuthRequest(http.MethodGet, "/v1/users", getToken(t, super))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var users []user.User
	decodeBody(t, rec, &users)
	if len(users) != 3 {
		t.Errorf("got %d users, want 3", len(users))
	}

	// filtered
	req, rec = newAuthRequest(http.MethodGet, "/v1/users?role=teacher", getToken(t, super))
	app.server.ServeHTTP(rec, req)
	decodeBody(t, rec, &users)
	if len(users) != 2 {
		t.Errorf("got %d teachers, want 2", len(users))
	}

	// ordered
	req, rec = newAuthRequest(http.MethodGet, "/v1/users?ordering=-username", getToken(t, super))
	app.server.ServeHTTP(rec, req)
	decodeBody(t, rec, &users)
	if len(users) != 3 || users[0].Username != "teacher2" {
		t.Errorf("ordering failed: first = %v", users[0].Username)
	}
}

func TestUserRetrieveUpdateDestroy(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)
	other := app.createUser(t, "teacher2", user.RoleTeacher)

	superTok := getToken(t, super)
	teacherTok := getToken(t, teacher)

	tests := []httpTest{
		{name: "own detail", method: http.MethodGet, path: "/v1/users/" + teacher.ID, token: teacherTok, wantCode: http.StatusOK},
		{name: "manager reads others", method: http.MethodGet, path: "/v1/users/" + teacher.ID, token: superTok, wantCode: http.StatusOK},
		{name: "non-manager cannot read others", method: http.MethodGet, path: "/v1/users/" + other.ID, token: teacherTok, wantCode: http.StatusNotFound},
		{name: "unknown id", method: http.MethodGet, path: "/v1/users/nope", token: superTok, wantCode: http.StatusNotFound},
		{
			name: "own name update", method: http.MethodPut, path: "/v1/users/" + teacher.ID, token: teacherTok,
			body: []byte(`{"name": "Renamed"}`), wantCode: http.StatusOK,
		},
		{
			name: "non-manager cannot change role", method: http.MethodPut, path: "/v1/users/" + teacher.ID, token: teacherTok,
			body: []byte(`{"role": "super"}`), wantCode: http.StatusForbidden,
		},
		{
			name: "manager changes role", method: http.MethodPut, path: "/v1/users/" + teacher.ID, token: superTok,
			body: []byte(`{"role": "district"}`), wantCode: http.StatusOK,
		},
		{name: "non-manager cannot delete", method: http.MethodDelete, path: "/v1/users/" + teacher.ID, token: teacherTok, wantCode: http.StatusForbidden},
		{name: "cannot delete self", method: http.MethodDelete, path: "/v1/users/" + super.ID, token: superTok, wantCode: http.StatusForbidden},
		{name: "manager deletes", method: http.MethodDelete, path: "/v1/users/" + teacher.ID, token: superTok, wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}
}

func TestUserDestroyMultiple(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)
	t1 := app.createUser(t, "teacher1", user.RoleTeacher)
	t2 := app.createUser(t, "teacher2", user.RoleTeacher)

	tok := getToken(t, super)

	// deleting a batch containing self is rejected outright
	req, rec := newAuthRequest(http.MethodDelete, "/v1/users?id="+t1.ID+"&id="+super.ID, tok)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %v, want 403", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/users?id="+t1.ID+"&id="+t2.ID, tok)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("code = %v, want 204; body %s", rec.Code, rec.Body.String())
	}
	if _, err := app.usrSvc.GetByID(t1.ID); err == nil {
		t.Error("user not deleted")
	}
}

func TestUserQueryRoles(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)

	tt := httpTest{name: "list roles", wantCode: http.StatusOK}
	req, rec := newAuthRequest(http.MethodGet, "/v1/users/roles", getToken(t, super))
	app.server.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec, marshallObj(t, user.Roles))
}

func TestUserPasswordResetFlow(t *testing.T) {
	app := setup(t)
	usr := app.createUser(t, "awiti", user.RolePrincipal)

	req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", []byte(`{"email": "awiti@test.test"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	if n := len(emailsvc.SentMessages); n != 1 {
		t.Fatalf("got %d sent messages, want 1", n)
	}

	// unknown emails get the same response and no email
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset", []byte(`{"email": "ghost@test.test"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %v, want 200", rec.Code)
	}
	if n := len(emailsvc.SentMessages); n != 1 {
		t.Errorf("got %d sent messages, want still 1", n)
	}

	// confirm with a real token
	token, err := user.MakeToken(usr, testConfig())
	if err != nil {
		t.Fatalf("MakeToken() failed: %v", err)
	}
	body := marshallObj(t, user.ResetUserPassword{
		UID:             user.EncodeUID(usr),
		Token:           token,
		Password:        "N3w#Secret!!",
		PasswordConfirm: "N3w#Secret!!",
	})
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	got, err := app.usrSvc.GetByID(usr.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if err := got.CheckPassword("N3w#Secret!!"); err != nil {
		t.Errorf("new password not set: %v", err)
	}

	// garbage token
	body = marshallObj(t, user.ResetUserPassword{
		UID:             user.EncodeUID(usr),
		Token:           "HE4TS-sigsig-sig",
		Password:        "An0ther#One!",
		PasswordConfirm: "An0ther#One!",
	})
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %v, want 400", rec.Code)
	}
}

func TestUserExport(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)

	// teachers have no export capability
	req, rec := newAuthRequest(http.MethodGet, "/v1/users/export", getToken(t, teacher))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %v, want 403", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/users/export", getToken(t, super))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %v, want text/csv", ct)
	}
	lines := bytesLines(rec.Body.Bytes())
	if len(lines) != 3 { // header + 2 users
		t.Errorf("got %d CSV lines, want 3", len(lines))
	}
}
