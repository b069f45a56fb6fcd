package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core/user"
)

// permsMiddleware rejects any request whose token capability record does not
// satisfy allowed.
func permsMiddleware(allowed func(perms user.Capabilities) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if allowed(claims.Perms) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func manageUsersMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.ManageUsers })
}

func createAssessmentsMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.CreateAssessments })
}

func editAssessmentsMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.EditAssessments })
}

func approveAssessmentsMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.ApproveAssessments })
}

func deleteAssessmentsMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.DeleteAssessments })
}

func exportDataMiddleware() echo.MiddlewareFunc {
	return permsMiddleware(func(perms user.Capabilities) bool { return perms.ExportData })
}
