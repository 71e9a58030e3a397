package http

import (
	"fmt"
	"net/http"
	"time"

	"postal/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func optionalDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("%s must be formatted as YYYY-MM-DD", name))
	}
	return &t, nil
}

// GetStatistics returns JSON, or an xlsx workbook when format=xlsx.
func (s *Server) GetStatistics(c echo.Context) error {
	from, err := optionalDate(c, "from")
	if err != nil {
		return err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return err
	}

	query, err := queries.NewGetStatisticsQuery(from, to)
	if err != nil {
		return err
	}
	stats, err := s.h.Statistics.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	switch c.QueryParam("format") {
	case "", "json":
		return c.JSON(http.StatusOK, NewStatisticsResponse(stats))
	case "xlsx":
		if s.h.ExportStatistics == nil {
			return echo.NewHTTPError(http.StatusNotImplemented, "xlsx export is not configured")
		}
		c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="statistics.xlsx"`)
		c.Response().WriteHeader(http.StatusOK)
		return s.h.ExportStatistics(c.Response(), stats)
	default:
		return badRequest("format must be json or xlsx")
	}
}
