package handlers

import (
	"net/http"

	"dyslexibrowse/internal/metrics"
	"dyslexibrowse/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ResultsHandler renders the progress dashboard: reading speed,
// comprehension, and comfort across recorded sessions.
type ResultsHandler struct {
	log   *zap.Logger
	store metrics.SessionLog
}

func NewResultsHandler(log *zap.Logger, store metrics.SessionLog) *ResultsHandler {
	return &ResultsHandler{log: log, store: store}
}

func (h *ResultsHandler) ShowResults(c *gin.Context) {
	sessions, err := h.store.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load session log", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load session history")
		return
	}
	if len(sessions) == 0 {
		c.String(http.StatusOK, "No reading sessions recorded yet")
		return
	}

	page := components.NewPage()
	page.SetPageTitle("Reading Progress")
	page.AddCharts(
		generateTimelineChart(sessions, "Reading Speed (WPM)", func(s models.ReadingSession) float64 { return s.ReadingSpeed }),
		generateTimelineChart(sessions, "Comprehension Score", func(s models.ReadingSession) float64 { return s.ComprehensionScore }),
		generateTimelineChart(sessions, "Comfort Rating", func(s models.ReadingSession) float64 { return s.ComfortRating }),
	)

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		h.log.Error("Failed to render results page", zap.Error(err))
	}
}

func generateTimelineChart(sessions []models.ReadingSession, label string, value func(models.ReadingSession) float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Metric Over Time",
			Subtitle: label,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, opts.LineData{Value: []interface{}{s.SessionStart, value(s)}})
	}

	line.AddSeries(label, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
