package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/assessment"
	"github.com/shulelabs/shule/core/user"
	emailsvc "github.com/shulelabs/shule/services/email"
	logsvc "github.com/shulelabs/shule/services/logger"
	inmemdb "github.com/shulelabs/shule/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server        Server
	usrSvc        *user.Service
	assessmentSvc *assessment.Service
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:                   "Shule",
		TestMode:                  true,
		SecretKey:                 "secret",
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "Shule", Address: "noreply@test.test"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func setup(t *testing.T) *testApp {
	t.Helper()
	emailsvc.ClearSentMessages()

	conf := testConfig()
	db := inmemdb.NewDB()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf)
	assessmentSvc := assessment.NewService(inmemdb.NewAssessmentRepository(db), mailSvc, conf)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	assessment.InitValidators(validate, translator)

	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)

	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		AssessmentSvc: assessmentSvc,
		Validate:      validate,
		Translator:    translator,
	})

	return &testApp{server: server, usrSvc: usrSvc, assessmentSvc: assessmentSvc}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (app *testApp) createUser(t *testing.T, uname string, role user.Role) user.User {
	t.Helper()
	usr, err := app.usrSvc.Create(user.NewUser{
		Name:     "Test " + uname,
		Username: uname,
		Email:    uname + "@test.test",
		Role:     string(role),
		Password: "Str0ng#Pass!",
	})
	if err != nil {
		t.Fatalf("creating user failed: %v", err)
	}
	return usr
}

func (app *testApp) createAssessment(t *testing.T) assessment.PolicyAssessment {
	t.Helper()
	a, err := app.assessmentSvc.Create(assessment.NewAssessment{
		ScopeLevel:    "school",
		ScopeRef:      "Mwangaza Primary",
		AssessorName:  "Jane Doe",
		AssessorEmail: "jane@test.test",
		Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("creating assessment failed: %v", err)
	}
	return a
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func checkCode(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder, wantData []byte) {
	t.Helper()
	checkCode(t, tt, rec)
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(wantData))
	}
}

func bytesLines(b []byte) []string {
	var lines []string
	for _, ln := range bytes.Split(bytes.TrimSpace(b), []byte("\n")) {
		lines = append(lines, string(ln))
	}
	return lines
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response failed: %v; body %s", err, rec.Body.String())
	}
}
