package echoapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/shulelabs/shule/core/assessment"
	"github.com/shulelabs/shule/core/user"
	emailsvc "github.com/shulelabs/shule/services/email"
)

func TestAssessmentCreate(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)

	body := []byte(`{
		"scope_level": "school", "scope_ref": "Mwangaza Primary",
		"assessor_name": "Jane Doe", "assessor_email": "jane@test.test"
	}`)

	tests := []httpTest{
		{name: "anonymous", body: body, wantCode: http.StatusUnauthorized},
		{name: "teacher cannot create", body: body, token: getToken(t, teacher), wantCode: http.StatusForbidden},
		{name: "principal creates", body: body, token: getToken(t, principal), wantCode: http.StatusCreated},
		{
			name:     "bad scope level",
			body:     []byte(`{"scope_level": "galaxy", "assessor_name": "J", "assessor_email": "j@test.test"}`),
			token:    getToken(t, principal),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing assessor",
			body:     []byte(`{"scope_level": "school"}`),
			token:    getToken(t, principal),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/assessments", tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var a assessment.PolicyAssessment
				decodeBody(t, rec, &a)
				if a.ID == "" || a.Status != assessment.StatusDraft {
					t.Errorf("created assessment = %v/%v", a.ID, a.Status)
				}
				if len(a.Themes) == 0 || len(a.CrossCutting) == 0 {
					t.Error("assessment not initialized from catalog")
				}
			}
		})
	}
}

func TestAssessmentQueryAndRetrieve(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	a := app.createAssessment(t)
	app.createAssessment(t)

	tok := getToken(t, principal)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments", tok)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var list []assessment.PolicyAssessment
	decodeBody(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("got %d assessments, want 2", len(list))
	}

	// filter by status
	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments?status=approved", tok)
	app.server.ServeHTTP(rec, req)
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Errorf("got %d approved assessments, want 0", len(list))
	}

	// detail
	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments/"+a.ID, tok)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v", rec.Code)
	}
	var got assessment.PolicyAssessment
	decodeBody(t, rec, &got)
	if got.ID != a.ID {
		t.Errorf("retrieved %v, want %v", got.ID, a.ID)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments/nope", tok)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %v, want 404", rec.Code)
	}
}

func TestAssessmentUpdateScores(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)
	a := app.createAssessment(t)

	tok := getToken(t, principal)
	path := "/v1/assessments/" + a.ID + "/scores"

	tests := []httpTest{
		{
			name:     "teacher cannot edit",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.1", "score": 80}`),
			token:    getToken(t, teacher),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "sub-theme score",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.1", "score": 80, "evidence": "vision published"}`),
			token:    tok,
			wantCode: http.StatusOK,
		},
		{
			name:     "sub-theme stage shortcut",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.2", "stage": "advanced"}`),
			token:    tok,
			wantCode: http.StatusOK,
		},
		{
			name:     "cross-cutting score",
			body:     []byte(`{"cross_cutting_code": "CC.1", "score": 60}`),
			token:    tok,
			wantCode: http.StatusOK,
		},
		{
			name:     "score out of range",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.1", "score": 120}`),
			token:    tok,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "neither score nor stage",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.1"}`),
			token:    tok,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown sub-theme",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.9", "score": 10}`),
			token:    tok,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown stage label",
			body:     []byte(`{"theme_code": "1", "sub_theme_code": "1.1", "stage": "legendary"}`),
			token:    tok,
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}

	// derived fields follow the last accepted writes
	got, err := app.assessmentSvc.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if st := got.Theme("1").SubTheme("1.1"); st.Score != 80 || st.Stage != assessment.StageEstablished {
		t.Errorf("sub-theme 1.1 = %v/%v, want 80/established", st.Score, st.Stage)
	}
	if st := got.Theme("1").SubTheme("1.2"); st.Score != 100 {
		t.Errorf("sub-theme 1.2 score = %v, want 100 (anchor snap)", st.Score)
	}
	if ct := got.CrossCuttingTheme("CC.1"); ct.Score != 60 {
		t.Errorf("cross-cutting CC.1 score = %v, want 60", ct.Score)
	}
	// theme 1: (80+100+0+0)/4 = 45
	if ts := got.Theme("1").OverallScore; ts != 45 {
		t.Errorf("theme 1 score = %v, want 45", ts)
	}
}

func TestAssessmentStatusWorkflow(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	ministry := app.createUser(t, "ministry1", user.RoleMinistry)
	a := app.createAssessment(t)

	path := "/v1/assessments/" + a.ID + "/status"

	// principal completes
	req, rec := newAuthRequest(http.MethodPut, path, getToken(t, principal), []byte(`{"status": "completed"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	// principal cannot approve
	req, rec = newAuthRequest(http.MethodPut, path, getToken(t, principal), []byte(`{"status": "approved"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %v, want 403", rec.Code)
	}

	// ministry approves; the assessor gets notified
	req, rec = newAuthRequest(http.MethodPut, path, getToken(t, ministry), []byte(`{"status": "approved"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	if n := len(emailsvc.SentMessages); n != 1 {
		t.Errorf("got %d sent messages, want 1", n)
	}

	// backward move is rejected
	req, rec = newAuthRequest(http.MethodPut, path, getToken(t, ministry), []byte(`{"status": "draft"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %v, want 400", rec.Code)
	}

	// unknown status
	req, rec = newAuthRequest(http.MethodPut, path, getToken(t, ministry), []byte(`{"status": "limbo"}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %v, want 400", rec.Code)
	}
}

func TestAssessmentDestroy(t *testing.T) {
	app := setup(t)
	super := app.createUser(t, "super1", user.RoleSuper)
	ministry := app.createUser(t, "ministry1", user.RoleMinistry)
	a := app.createAssessment(t)

	// only the system owner can delete
	req, rec := newAuthRequest(http.MethodDelete, "/v1/assessments/"+a.ID, getToken(t, ministry))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %v, want 403", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/assessments/"+a.ID, getToken(t, super))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("code = %v, want 204; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/assessments/"+a.ID, getToken(t, super))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %v, want 404", rec.Code)
	}
}

func TestAssessmentRecommendations(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	a := app.createAssessment(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/"+a.ID+"/recommendations", getToken(t, principal))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var recs []assessment.Recommendation
	decodeBody(t, rec, &recs)
	if len(recs) == 0 {
		t.Fatal("want recommendations for an all-zero assessment")
	}
	if recs[0].Priority != assessment.PriorityHigh {
		t.Errorf("first rec priority = %v, want high", recs[0].Priority)
	}
}

func TestAssessmentTrends(t *testing.T) {
	app := setup(t)
	principal := app.createUser(t, "principal1", user.RolePrincipal)
	app.createAssessment(t)
	app.createAssessment(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/trends?scope_ref=Mwangaza+Primary", getToken(t, principal))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var points []assessment.TrendPoint
	decodeBody(t, rec, &points)
	if len(points) != 2 {
		t.Errorf("got %d points, want 2", len(points))
	}
}

func TestAssessmentCatalog(t *testing.T) {
	app := setup(t)
	teacher := app.createUser(t, "teacher1", user.RoleTeacher)

	// any authenticated user can read the catalog
	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/catalog", getToken(t, teacher))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var cat assessment.Catalog
	decodeBody(t, rec, &cat)
	if len(cat.Themes) != 8 || len(cat.CrossCutting) != 6 {
		t.Errorf("catalog = %d themes / %d cross-cutting, want 8/6", len(cat.Themes), len(cat.CrossCutting))
	}
}

func TestAssessmentExport(t *testing.T) {
	app := setup(t)
	district := app.createUser(t, "district1", user.RoleDistrict)
	a := app.createAssessment(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/export", getToken(t, district))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %v, want text/csv", ct)
	}
	lines := bytesLines(rec.Body.Bytes())
	if want := 1 + len(a.Themes); len(lines) != want { // header + one row per theme
		t.Errorf("got %d CSV lines, want %d", len(lines), want)
	}
	if !strings.Contains(lines[1], "Mwangaza Primary") {
		t.Errorf("row = %q, want scope ref present", lines[1])
	}
}
