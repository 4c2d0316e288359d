package geo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/platform/httpx"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/view"
)

// Drain parameters for loading every customer record for the map.
const (
	mapPageSize = 100
	mapMaxPages = 50
)

// API is the subset of the backend client the map needs.
type API interface {
	ListCustomers(ctx context.Context, page, limit int, purposeID *int64) (backend.CustomerPage, error)
}

// Handler serves the map page and its marker feed.
type Handler struct {
	logger    *slog.Logger
	api       API
	directory *directory.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api API, dir *directory.Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		api:       api,
		directory: dir,
		templates: templates,
		csrf:      csrf,
	}
}

// MountRoutes registers the map routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Get("/markers.json", h.Markers)
}

type markersPayload struct {
	Markers       []Marker `json:"markers"`
	Viewport      Viewport `json:"viewport"`
	ClusterRadius int      `json:"cluster_radius"`
}

// Show renders the map shell; markers arrive through the JSON feed.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	var flash *shared.FlashMessage
	userName := ""
	if sess != nil {
		flash = sess.PopFlash()
		userName = sess.UserName()
	}

	viewData := view.TemplateData{
		Title:       "Customer map",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		UserName:    userName,
	}
	if err := h.templates.Render(w, "pages/map.html", viewData); err != nil {
		h.logger.Error("render map", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Markers serves the marker set plus the framing the client should apply.
func (h *Handler) Markers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.loadAll(r.Context())
	if err != nil {
		h.logger.Error("load customers for map", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Marker load failed", "The customer backend did not respond")
		return
	}

	index := h.directory.Index(r.Context())
	markers := BuildMarkers(customers, index)
	httpx.JSON(w, http.StatusOK, markersPayload{
		Markers:       markers,
		Viewport:      ComputeViewport(markers),
		ClusterRadius: clusterRadius,
	})
}

func (h *Handler) loadAll(ctx context.Context) ([]backend.Customer, error) {
	var all []backend.Customer
	for page := 1; page <= mapMaxPages; page++ {
		envelope, err := shared.RetryOnce(ctx, func(ctx context.Context) (backend.CustomerPage, error) {
			return h.api.ListCustomers(ctx, page, mapPageSize, nil)
		})
		if err != nil {
			return nil, err
		}
		all = append(all, envelope.Data...)
		if len(envelope.Data) < mapPageSize {
			break
		}
	}
	return all, nil
}
