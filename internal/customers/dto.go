package customers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pawan-gold/goldcrest/internal/backend"
)

// Form carries the create/edit fields. Name and mobile are the only
// mandatory inputs; everything else falls back to a sensible default.
type Form struct {
	Name         string `validate:"required"`
	MobNo        string `validate:"required,min=10,max=15"`
	Address      string
	Purpose      int64
	Whatsapp     string
	Notification string
	JoiningDate  string `validate:"omitempty,datetime=2006-01-02"`
	StaffID      int64
	Latitude     *float64
	Longitude    *float64
}

// parseForm reads the posted fields and applies the defaults.
func parseForm(r *http.Request) Form {
	f := Form{
		Name:         r.PostFormValue("name"),
		MobNo:        r.PostFormValue("mob_no"),
		Address:      r.PostFormValue("address"),
		Whatsapp:     r.PostFormValue("whatsapp"),
		Notification: r.PostFormValue("notification"),
		JoiningDate:  r.PostFormValue("joining_date"),
		Purpose:      1,
		StaffID:      1,
	}
	if v, err := strconv.ParseInt(r.PostFormValue("purpose"), 10, 64); err == nil && v > 0 {
		f.Purpose = v
	}
	if v, err := strconv.ParseInt(r.PostFormValue("staff_id"), 10, 64); err == nil && v > 0 {
		f.StaffID = v
	}
	if f.Whatsapp == "" {
		f.Whatsapp = "yes"
	}
	if f.Notification == "" {
		f.Notification = "yes"
	}
	if f.JoiningDate == "" {
		f.JoiningDate = time.Now().Format("2006-01-02")
	}
	if lat, err := strconv.ParseFloat(r.PostFormValue("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(r.PostFormValue("longitude"), 64); err == nil {
			f.Latitude = &lat
			f.Longitude = &lng
		}
	}
	return f
}

// formFromCustomer pre-fills the edit form from an existing record.
func formFromCustomer(c backend.Customer) Form {
	return Form{
		Name:         c.Name,
		MobNo:        c.MobNo,
		Address:      c.Address,
		Purpose:      c.Purpose,
		Whatsapp:     c.Whatsapp,
		Notification: c.Notification,
		JoiningDate:  c.JoiningDate,
		StaffID:      c.StaffID,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
	}
}

func (f Form) toInput() backend.CustomerInput {
	return backend.CustomerInput{
		Name:         f.Name,
		MobNo:        f.MobNo,
		Address:      f.Address,
		Purpose:      f.Purpose,
		Whatsapp:     f.Whatsapp,
		Notification: f.Notification,
		JoiningDate:  f.JoiningDate,
		StaffID:      f.StaffID,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
	}
}

// toPatch sends every form field; the form always posts the full record.
func (f Form) toPatch() backend.CustomerPatch {
	return backend.CustomerPatch{
		Name:         &f.Name,
		MobNo:        &f.MobNo,
		Address:      &f.Address,
		Purpose:      &f.Purpose,
		Whatsapp:     &f.Whatsapp,
		Notification: &f.Notification,
		JoiningDate:  &f.JoiningDate,
		StaffID:      &f.StaffID,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
	}
}
