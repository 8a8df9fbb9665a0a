package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/superlibrary/library-api/internal/core/ports"
)

const defaultListLimit = 50

// listQueryFromContext parses skip/limit pagination and collects the named
// query parameters as exact-match filters. The limit ceiling is enforced by
// the service layer, not here.
func listQueryFromContext(c echo.Context, filterParams ...string) (ports.ListQuery, error) {
	q := ports.ListQuery{Limit: defaultListLimit}

	if raw := c.QueryParam("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return ports.ListQuery{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "skip must be a non-negative integer")
		}
		q.Skip = skip
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return ports.ListQuery{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be a positive integer")
		}
		q.Limit = limit
	}

	for _, name := range filterParams {
		if v := c.QueryParam(name); v != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[name] = v
		}
	}

	return q, nil
}
