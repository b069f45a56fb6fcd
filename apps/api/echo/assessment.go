package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/assessment"
	"github.com/shulelabs/shule/core/user"
)

var errScoreOrStageRequired = "either a score or a stage is required"

type assessmentApi struct {
	svc      *assessment.Service
	usrSvc   *user.Service
	validate *validator.Validate
}

func registerAssessmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *assessment.Service,
	usrSvc *user.Service,
	validate *validator.Validate,
) {
	api := assessmentApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	ag := g.Group("/assessments", jwt)

	ag.POST("", api.create, createAssessmentsMiddleware())
	ag.GET("", api.query)
	ag.DELETE("", api.destroyMultiple, deleteAssessmentsMiddleware())
	ag.GET("/catalog", api.catalog)
	ag.GET("/trends", api.trends)
	ag.GET("/export", api.export, exportDataMiddleware())

	// detail endpoints
	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/recommendations", api.recommendations)
	dg.PUT("/scores", api.updateScores, editAssessmentsMiddleware())
	dg.PUT("/status", api.updateStatus, editAssessmentsMiddleware())
	dg.DELETE("", api.destroy, deleteAssessmentsMiddleware())
}

// Handlers

func (api *assessmentApi) create(ctx echo.Context) error {
	var data assessment.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating assessment")
	}

	return ctx.JSON(http.StatusCreated, a)
}

func (api *assessmentApi) query(ctx echo.Context) error {
	filter := new(assessment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []assessment.PolicyAssessment{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	assessments, err := api.svc.Filter(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	if assessments == nil {
		assessments = []assessment.PolicyAssessment{}
	}
	return ctx.JSON(http.StatusOK, assessments)
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	a, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assessment by ID")
	}
	return ctx.JSON(http.StatusOK, a)
}

// updateScores applies one score mutation, either to a sub-theme or to a
// cross-cutting theme. Every derived field of the returned assessment has
// already been recomputed.
func (api *assessmentApi) updateScores(ctx echo.Context) error {
	var data assessment.ScoreUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScoreUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if data.Score == nil && data.Stage == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "score", Error: errScoreOrStageRequired})
	}

	id := ctx.Param("id")

	var a assessment.PolicyAssessment
	var err error
	switch {
	case data.IsCrossCutting() && data.Score != nil:
		a, err = api.svc.SetCrossCuttingScore(id, data.CrossCuttingCode, *data.Score, data.Evidence)
	case data.IsCrossCutting():
		a, err = api.svc.SetCrossCuttingStage(id, data.CrossCuttingCode, assessment.StageLabel(data.Stage), data.Evidence)
	case data.Score != nil:
		a, err = api.svc.SetSubThemeScore(id, data.ThemeCode, data.SubThemeCode, *data.Score, data.Evidence)
	default:
		a, err = api.svc.SetSubThemeStage(id, data.ThemeCode, data.SubThemeCode, assessment.StageLabel(data.Stage), data.Evidence)
	}
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) updateStatus(ctx echo.Context) error {
	var data assessment.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// approvals need their own capability on top of edit rights
	if assessment.Status(data.Status) == assessment.StatusApproved {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if !claims.Perms.ApproveAssessments {
			return errHttpForbidden
		}
	}

	a, err := api.svc.UpdateStatus(ctx.Param("id"), assessment.Status(data.Status))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assessment by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assessment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assessmentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting assessments")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assessmentApi) recommendations(ctx echo.Context) error {
	recs, err := api.svc.Recommendations(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting recommendations")
	}
	if recs == nil {
		recs = []assessment.Recommendation{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *assessmentApi) trends(ctx echo.Context) error {
	filter := new(assessment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []assessment.TrendPoint{})
	}
	filter.Clean()

	points, err := api.svc.Trends(*filter)
	if err != nil {
		return errors.Wrap(err, "computing trends")
	}
	if points == nil {
		points = []assessment.TrendPoint{}
	}
	return ctx.JSON(http.StatusOK, points)
}

func (api *assessmentApi) catalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Catalog())
}

func (api *assessmentApi) export(ctx echo.Context) error {
	filter := new(assessment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	assessments, err := api.svc.Filter(*filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	return writeAssessmentsCSV(ctx, assessments)
}
