package staff

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

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

type staffForm struct {
	Name        string `validate:"required"`
	MobNo       string `validate:"required,min=10,max=15"`
	Address     string
	JoiningDate string `validate:"omitempty,datetime=2006-01-02"`
}

// parseStaffForm reads the create form. An omitted joining date defaults to
// today, same as the customer form.
func parseStaffForm(r *http.Request) staffForm {
	form := staffForm{
		Name:        r.PostFormValue("name"),
		MobNo:       r.PostFormValue("mob_no"),
		Address:     r.PostFormValue("address"),
		JoiningDate: r.PostFormValue("joining_date"),
	}
	if form.JoiningDate == "" {
		form.JoiningDate = time.Now().Format("2006-01-02")
	}
	return form
}

// MountRoutes registers the staff routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/lookup", h.Lookup)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list staff failed", "error", err)
		http.Error(w, "Failed to load staff", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/staff.html", map[string]any{
		"Staff":        staff,
		"Errors":       formErrors{},
		"Form":         staffForm{},
		"LookupMobile": "",
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := parseStaffForm(r)
	if errs := h.validate(form); len(errs) > 0 {
		h.renderListWithForm(w, r, form, errs)
		return
	}

	input := backend.StaffInput{
		Name:        form.Name,
		MobNo:       form.MobNo,
		Address:     form.Address,
		JoiningDate: form.JoiningDate,
	}
	if err := h.service.Create(r.Context(), input); err != nil {
		h.logger.Error("create staff failed", "error", err)
		h.renderListWithForm(w, r, form, formErrors{"general": shared.UserSafeMessage(err)})
		return
	}

	h.redirectWithFlash(w, r, "/staff", "success", "Staff member added")
}

// Lookup finds the staff record holding exactly the supplied mobile number.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	mobile := r.URL.Query().Get("mobile")
	if mobile == "" {
		h.redirectWithFlash(w, r, "/staff", "error", "Enter a mobile number to search")
		return
	}

	record, err := h.service.ByMobile(r.Context(), mobile)
	var result *backend.Staff
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("staff lookup failed", "error", err, "mobile", mobile)
			http.Error(w, "Lookup failed", http.StatusInternalServerError)
			return
		}
	} else {
		result = &record
	}

	staff, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list staff failed", "error", err)
		staff = nil
	}

	h.render(w, r, "pages/staff.html", map[string]any{
		"Staff":        staff,
		"Errors":       formErrors{},
		"Form":         staffForm{},
		"LookupMobile": mobile,
		"LookupResult": result,
	}, http.StatusOK)
}

func (h *Handler) validate(form staffForm) formErrors {
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

func (h *Handler) renderListWithForm(w http.ResponseWriter, r *http.Request, form staffForm, errs formErrors) {
	staff, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list staff failed", "error", err)
		staff = nil
	}
	h.render(w, r, "pages/staff.html", map[string]any{
		"Staff":        staff,
		"Errors":       errs,
		"Form":         form,
		"LookupMobile": "",
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
		Title:       "Staff",
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
