package purposes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
	}
}

type formErrors map[string]string

type purposeForm struct {
	Purpose string `validate:"required"`
	Descr   string
}

// MountRoutes registers the purpose routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}/edit", h.ShowEditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	purposes, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list purposes failed", "error", err)
		http.Error(w, "Failed to load purposes", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/purposes.html", map[string]any{
		"Purposes": purposes,
		"Errors":   formErrors{},
		"Form":     purposeForm{},
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := purposeForm{
		Purpose: r.PostFormValue("purpose"),
		Descr:   r.PostFormValue("descr"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.renderListWithForm(w, r, form, formErrors{"purpose": "Purpose name is required"})
		return
	}

	if err := h.service.Create(r.Context(), backend.PurposeInput{Purpose: form.Purpose, Descr: form.Descr}); err != nil {
		h.logger.Error("create purpose failed", "error", err)
		h.renderListWithForm(w, r, form, formErrors{"general": shared.UserSafeMessage(err)})
		return
	}

	h.redirectWithFlash(w, r, "/purposes", "success", "Purpose added")
}

func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid purpose ID", http.StatusBadRequest)
		return
	}

	purpose, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Purpose not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get purpose failed", "error", err, "id", id)
		http.Error(w, "Failed to load purpose", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/purpose_form.html", map[string]any{
		"Errors": formErrors{},
		"Form":   purposeForm{Purpose: purpose.Purpose, Descr: purpose.Descr},
		"ID":     id,
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid purpose ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := purposeForm{
		Purpose: r.PostFormValue("purpose"),
		Descr:   r.PostFormValue("descr"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.render(w, r, "pages/purpose_form.html", map[string]any{
			"Errors": formErrors{"purpose": "Purpose name is required"},
			"Form":   form,
			"ID":     id,
		}, http.StatusBadRequest)
		return
	}

	if err := h.service.Update(r.Context(), id, backend.PurposeInput{Purpose: form.Purpose, Descr: form.Descr}); err != nil {
		h.logger.Error("update purpose failed", "error", err, "id", id)
		h.render(w, r, "pages/purpose_form.html", map[string]any{
			"Errors": formErrors{"general": shared.UserSafeMessage(err)},
			"Form":   form,
			"ID":     id,
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/purposes", "success", "Purpose updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid purpose ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete purpose failed", "error", err, "id", id)
		h.redirectWithFlash(w, r, "/purposes", "error", shared.UserSafeMessage(err))
		return
	}

	h.redirectWithFlash(w, r, "/purposes", "success", "Purpose deleted")
}

func (h *Handler) renderListWithForm(w http.ResponseWriter, r *http.Request, form purposeForm, errs formErrors) {
	purposes, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list purposes failed", "error", err)
		purposes = nil
	}
	h.render(w, r, "pages/purposes.html", map[string]any{
		"Purposes": purposes,
		"Errors":   errs,
		"Form":     form,
	}, http.StatusBadRequest)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	var flash *shared.FlashMessage
	userName := ""
	if sess != nil {
		flash = sess.PopFlash()
		userName = sess.UserName()
	}

	viewData := view.TemplateData{
		Title:       "Purposes",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		UserName:    userName,
		Data:        data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, tmpl, viewData); err != nil {
		h.logger.Error("template render failed", "error", err, "template", tmpl)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, kind, message string) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
