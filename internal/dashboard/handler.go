package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/charts"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/view"
)

// Handler serves the overview landing page.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	directory   *directory.Service
	templates   *view.Engine
	csrfManager *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, dir *directory.Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		directory:   dir,
		templates:   templates,
		csrfManager: csrf,
	}
}

type recentRow struct {
	Customer    backend.Customer
	PurposeName string
}

type pageData struct {
	Overview     Overview
	TodayCount   int
	DailyChart   template.HTML
	StaffChart   template.HTML
	Recent       []recentRow
	DailyFailed  bool
	TrendFailed  bool
	StaffFailed  bool
	RecentFailed bool
}

// Show renders the overview with its charts and stat cards.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overview := h.service.Load(ctx)
	index := h.directory.Index(ctx)

	// Failed panels render an error variant instead of the empty state.
	data := pageData{
		Overview:     overview,
		DailyFailed:  overview.Failed[PanelDaily] != nil,
		TrendFailed:  overview.Failed[PanelTrend] != nil,
		StaffFailed:  overview.Failed[PanelStaff] != nil,
		RecentFailed: overview.Failed[PanelRecent] != nil,
	}

	if len(overview.Daily7) > 0 {
		data.TodayCount = overview.Daily7[0].Count
		// The series arrives most-recent-first; the chart reads left to right.
		series := make([]float64, len(overview.Daily7))
		labels := make([]string, len(overview.Daily7))
		for i, point := range overview.Daily7 {
			j := len(overview.Daily7) - 1 - i
			series[j] = float64(point.Count)
			labels[j] = point.Date
		}
		chart, err := charts.Area(charts.DefaultWidth, charts.DefaultHeight, series, labels, charts.AreaOpts{
			Title: "New customers, last 7 days",
		})
		if err != nil {
			h.logger.Warn("render daily chart", slog.Any("error", err))
		} else {
			data.DailyChart = chart
		}
	}

	if len(overview.StaffCounts) > 0 {
		values := make([]float64, len(overview.StaffCounts))
		labels := make([]string, len(overview.StaffCounts))
		for i, row := range overview.StaffCounts {
			values[i] = float64(row.CustomerCount)
			labels[i] = row.StaffName
		}
		chart, err := charts.HBars(charts.DefaultWidth, values, labels, charts.HBarOpts{
			Title: "Customers added per staff member",
		})
		if err != nil {
			h.logger.Warn("render staff chart", slog.Any("error", err))
		} else {
			data.StaffChart = chart
		}
	}

	data.Recent = make([]recentRow, 0, len(overview.Recent))
	for _, customer := range overview.Recent {
		data.Recent = append(data.Recent, recentRow{
			Customer:    customer,
			PurposeName: index.PurposeName(customer.Purpose),
		})
	}

	sess := shared.SessionFromContext(ctx)
	csrfToken, _ := h.csrfManager.EnsureToken(ctx, sess)
	var flash *shared.FlashMessage
	userName := ""
	if sess != nil {
		flash = sess.PopFlash()
		userName = sess.UserName()
	}

	viewData := view.TemplateData{
		Title:       "Dashboard",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		UserName:    userName,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
