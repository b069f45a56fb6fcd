package echoapi

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core/assessment"
	"github.com/shulelabs/shule/core/user"
)

// CSV download helpers. Spreadsheets are still how ministries move data
// around, so both list endpoints get a flat projection.

func startCSV(ctx echo.Context, filename string) *csv.Writer {
	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Response().WriteHeader(http.StatusOK)
	return csv.NewWriter(ctx.Response())
}

func writeUsersCSV(ctx echo.Context, users []user.User) error {
	w := startCSV(ctx, "users.csv")

	header := []string{"id", "name", "username", "email", "role", "is_active", "created_at", "last_login"}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}

	for _, usr := range users {
		row := []string{
			usr.ID,
			usr.Name,
			usr.Username,
			usr.Email,
			string(usr.Role),
			strconv.FormatBool(usr.IsActive),
			usr.CreatedAt.Format(time.RFC3339),
			formatNullableTime(usr.LastLogin),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "flushing CSV")
}

// writeAssessmentsCSV writes one row per theme per assessment; the assessment
// level fields repeat on each row so the file pivots cleanly.
func writeAssessmentsCSV(ctx echo.Context, assessments []assessment.PolicyAssessment) error {
	w := startCSV(ctx, "assessments.csv")

	header := []string{
		"id", "date", "scope_level", "scope_ref", "assessor_name", "assessor_email",
		"status", "overall_score", "overall_stage", "theme_code", "theme_name", "theme_score", "theme_stage",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}

	for _, a := range assessments {
		base := []string{
			a.ID,
			a.Date.Format("2006-01-02"),
			string(a.ScopeLevel),
			a.ScopeRef,
			a.Assessor.Name,
			a.Assessor.Email,
			string(a.Status),
			strconv.Itoa(a.OverallScore),
			string(a.OverallStage),
		}
		for _, t := range a.Themes {
			row := append(append([]string(nil), base...),
				t.Code,
				t.Name,
				strconv.Itoa(t.OverallScore),
				string(t.Stage),
			)
			if err := w.Write(row); err != nil {
				return errors.Wrap(err, "writing CSV row")
			}
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "flushing CSV")
}

func formatNullableTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
