package customers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	directory *directory.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

func NewHandler(
	logger *slog.Logger,
	service *Service,
	dir *directory.Service,
	templates *view.Engine,
	csrf *shared.CSRFManager,
) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		directory: dir,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
	}
}

type formErrors map[string]string

// MountRoutes registers the customer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.ShowForm)
	r.Post("/", h.Create)
	// The export drains the whole backend; keep it from being hammered.
	r.With(httprate.Limit(6, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).Get("/export.csv", h.Export)
	r.Get("/{id}/edit", h.ShowEditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("list customers failed", "error", err)
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}

	purposes, staff := h.collections(r.Context())
	h.render(w, r, "pages/customers_list.html", "Customers", map[string]any{
		"Rows":       result.Rows,
		"Pagination": result.Pagination,
		"Analytics":  result.Analytics,
		"Purposes":   purposes,
		"Staff":      staff,
		"Query":      q,
	}, http.StatusOK)
}

func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	purposes, staff := h.collections(r.Context())
	h.render(w, r, "pages/customer_form.html", "Add customer", map[string]any{
		"Errors":   formErrors{},
		"Form":     Form{Whatsapp: "yes", Notification: "yes", Purpose: 1, StaffID: 1},
		"Purposes": purposes,
		"Staff":    staff,
		"IsEdit":   false,
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := parseForm(r)
	if errs := h.validate(form); len(errs) > 0 {
		h.renderForm(w, r, form, errs, false, 0)
		return
	}

	if err := h.service.Create(r.Context(), form.toInput()); err != nil {
		h.logger.Error("create customer failed", "error", err)
		h.renderForm(w, r, form, formErrors{"general": shared.UserSafeMessage(err)}, false, 0)
		return
	}

	h.redirectWithFlash(w, r, "/customers", "success", "Customer added")
}

func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get customer failed", "error", err, "id", id)
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	h.renderForm(w, r, formFromCustomer(customer), formErrors{}, true, id)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := parseForm(r)
	if errs := h.validate(form); len(errs) > 0 {
		h.renderForm(w, r, form, errs, true, id)
		return
	}

	if err := h.service.Update(r.Context(), id, form.toPatch()); err != nil {
		h.logger.Error("update customer failed", "error", err, "id", id)
		h.renderForm(w, r, form, formErrors{"general": shared.UserSafeMessage(err)}, true, id)
		return
	}

	h.redirectWithFlash(w, r, "/customers", "success", "Customer updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete customer failed", "error", err, "id", id)
		h.redirectWithFlash(w, r, "/customers", "error", shared.UserSafeMessage(err))
		return
	}

	h.redirectWithFlash(w, r, "/customers", "success", "Customer deleted")
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")

	var buf bytes.Buffer
	if _, err := h.service.Export(r.Context(), &buf, from); err != nil {
		if errors.Is(err, shared.ErrNoRecords) {
			h.redirectWithFlash(w, r, "/customers", "error", shared.UserSafeMessage(err))
			return
		}
		h.logger.Error("export customers failed", "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename(from)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func queryFromRequest(r *http.Request) Query {
	q := Query{Search: r.URL.Query().Get("search"), StartDate: r.URL.Query().Get("from"), Page: 1}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("purpose"), 10, 64); err == nil && v > 0 {
		q.PurposeID = &v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("staff"), 10, 64); err == nil && v > 0 {
		q.StaffID = &v
	}
	return q
}

func (h *Handler) validate(form Form) formErrors {
	errs := formErrors{}
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Name":
					errs["name"] = "Name is required"
				case "MobNo":
					errs["mob_no"] = "A valid mobile number is required"
				case "JoiningDate":
					errs["joining_date"] = "Joining date must be YYYY-MM-DD"
				}
			}
		} else {
			errs["general"] = "Invalid input"
		}
	}
	return errs
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, form Form, errs formErrors, isEdit bool, id int64) {
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusBadRequest
	}
	title := "Add customer"
	if isEdit {
		title = "Edit customer"
	}
	purposes, staff := h.collections(r.Context())
	h.render(w, r, "pages/customer_form.html", title, map[string]any{
		"Errors":   errs,
		"Form":     form,
		"Purposes": purposes,
		"Staff":    staff,
		"IsEdit":   isEdit,
		"ID":       id,
	}, status)
}

// collections loads the dropdown listings, degrading to empty on failure so
// the page still renders.
func (h *Handler) collections(ctx context.Context) ([]backend.Purpose, []backend.Staff) {
	purposes, err := h.directory.Purposes(ctx)
	if err != nil {
		h.logger.Warn("load purposes", "error", err)
	}
	staff, err := h.directory.StaffList(ctx)
	if err != nil {
		h.logger.Warn("load staff", "error", err)
	}
	return purposes, staff
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	var flash *shared.FlashMessage
	userName := ""
	if sess != nil {
		flash = sess.PopFlash()
		userName = sess.UserName()
	}

	viewData := view.TemplateData{
		Title:       title,
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
