package handler

import (
	"net/http"

	"graphview-service/pkg/logger"
	"graphview-service/pkg/supplychain"
	"graphview-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsHandler proxies the backend's analytical reports, normalized
// through the same wire decoding as the graph pages.
type StatsHandler struct {
	backend *supplychain.Client
}

func NewStatsHandler(backend *supplychain.Client) *StatsHandler {
	return &StatsHandler{backend: backend}
}

// Report serves one named report. Unknown report names are 404.
func (h *StatsHandler) Report(c echo.Context) error {
	log := logger.FromContext(c)
	report := c.Param("report")
	ctx := c.Request().Context()

	var (
		data any
		err  error
	)
	switch report {
	case "needs-distribution":
		data, err = h.backend.NeedsDistribution(ctx)
	case "top-sales":
		data, err = h.backend.TopSales(ctx)
	case "most-loaded-routes":
		data, err = h.backend.MostLoadedRoutes(ctx)
	case "longest-time-route":
		data, err = h.backend.LongestTimeRoute(ctx)
	case "top-providers":
		data, err = h.backend.TopProviders(ctx)
	case "most-purchased-products":
		data, err = h.backend.MostPurchasedProducts(ctx)
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown report"})
	}

	if err != nil {
		prometheus.RecordBackendError("stats_" + report)
		log.Error("Report fetch failed", zap.String("report", report), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": displayMessage(err)})
	}

	log.Info("Report served", zap.String("report", report))
	return c.JSON(http.StatusOK, echo.Map{"report": report, "data": data})
}
