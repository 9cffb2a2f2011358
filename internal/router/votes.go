package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opengovaccess/votewatch/internal/apperr"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/pkg/pagination"
)

// VotesRouter exposes the read model: meetings, legislation and the actions
// officials took on it.
type VotesRouter struct {
	e       *echo.Echo
	storage storage.Reader
}

func NewVotesRouter(e *echo.Echo, storage storage.Reader) *VotesRouter {
	return &VotesRouter{
		e:       e,
		storage: storage,
	}
}

func (r *VotesRouter) Bind() {
	r.e.GET("/meetings", r.listMeetingsHandler)
	r.e.GET("/legislation", r.listLegislationHandler)
	r.e.GET("/legislation/:fileNumber", r.getLegislationHandler)
	r.e.GET("/officials", r.listOfficialsHandler)
	r.e.GET("/officials/:name/actions", r.listActionsHandler)
	r.e.GET("/officials/:name/stats", r.officialStatsHandler)
	r.e.GET("/stats/overview", r.overviewHandler)
}

func (r *VotesRouter) listMeetingsHandler(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}

	meetings, err := r.storage.ListMeetings(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewOffsetResult(meetings, page))
}

func (r *VotesRouter) listLegislationHandler(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}

	items, err := r.storage.ListLegislation(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewOffsetResult(items, page))
}

func (r *VotesRouter) getLegislationHandler(c echo.Context) error {
	fileNumber := c.Param("fileNumber")
	if fileNumber == "" {
		return apperr.NewValidation("fileNumber is required")
	}

	detail, err := r.storage.GetLegislation(c.Request().Context(), fileNumber)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "legislation not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (r *VotesRouter) listOfficialsHandler(c echo.Context) error {
	officials, err := r.storage.ListOfficials(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, officials)
}

func (r *VotesRouter) listActionsHandler(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return apperr.NewValidation("official name is required")
	}

	actions, err := r.storage.ListActionsByOfficial(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actions)
}

func (r *VotesRouter) officialStatsHandler(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return apperr.NewValidation("official name is required")
	}

	stats, err := r.storage.GetOfficialStats(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "official not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (r *VotesRouter) overviewHandler(c echo.Context) error {
	overview, err := r.storage.GetOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

func bindPage(c echo.Context) (pagination.OffsetRequest, error) {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return page, apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	_ = page.Validate()
	return page, nil
}
