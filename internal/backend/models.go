package backend

// Customer mirrors the backend's customer record. Latitude and longitude are
// either both present or both null; the same holds for the added-from pair,
// which records where the staff member stood when the record was created.
type Customer struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	MobNo              string   `json:"mob_no"`
	Address            string   `json:"address"`
	Purpose            int64    `json:"purpose"`
	Whatsapp           string   `json:"whatsapp"`
	Notification       string   `json:"notification"`
	JoiningDate        string   `json:"joining_date"`
	StaffID            int64    `json:"staff_id"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	AddedFromLatitude  *float64 `json:"added_from_latitude,omitempty"`
	AddedFromLongitude *float64 `json:"added_from_longitude,omitempty"`
}

// HasLocation reports whether the record carries a complete coordinate pair.
func (c Customer) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Purpose is a flat category label a customer record is filed under.
type Purpose struct {
	ID      int64  `json:"id"`
	Purpose string `json:"purpose"`
	Descr   string `json:"descr"`
}

// Staff is an employee a customer can be attributed to. LeavingDate stays
// null while the employee is active.
type Staff struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MobNo       string  `json:"mob_no"`
	Address     string  `json:"address"`
	JoiningDate string  `json:"joining_date"`
	LeavingDate *string `json:"leaving_date"`
}

// DailyCount is one day of the trailing-window analytics series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StaffCount is one leaderboard row of customers attributed to a staff member.
type StaffCount struct {
	StaffID       int64  `json:"staff_id"`
	StaffName     string `json:"staff_name"`
	CustomerCount int    `json:"customer_count"`
}

// CustomerPage is the backend's page envelope for customer listings.
type CustomerPage struct {
	Status       string           `json:"status"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalRecords int              `json:"total_records"`
	TotalPages   int              `json:"total_pages"`
	Data         []Customer       `json:"data"`
	Analytics    *FilterAnalytics `json:"analytics,omitempty"`
}

// FilterAnalytics is the optional aggregate block the filtered-list endpoint
// attaches to its envelope.
type FilterAnalytics struct {
	MatchTotal int          `json:"match_total"`
	PerDay     []DailyCount `json:"per_day,omitempty"`
}

// CustomerInput carries the editable fields of a customer record.
type CustomerInput struct {
	Name         string   `json:"name"`
	MobNo        string   `json:"mob_no"`
	Address      string   `json:"address"`
	Purpose      int64    `json:"purpose"`
	Whatsapp     string   `json:"whatsapp"`
	Notification string   `json:"notification"`
	JoiningDate  string   `json:"joining_date"`
	StaffID      int64    `json:"staff_id"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// CustomerPatch carries a partial update; only non-nil fields are sent, so
// omitted fields keep their current value server-side.
type CustomerPatch struct {
	Name         *string  `json:"name,omitempty"`
	MobNo        *string  `json:"mob_no,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Purpose      *int64   `json:"purpose,omitempty"`
	Whatsapp     *string  `json:"whatsapp,omitempty"`
	Notification *string  `json:"notification,omitempty"`
	JoiningDate  *string  `json:"joining_date,omitempty"`
	StaffID      *int64   `json:"staff_id,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// PurposeInput carries the editable fields of a purpose.
type PurposeInput struct {
	Purpose string `json:"purpose"`
	Descr   string `json:"descr"`
}

// StaffInput carries the editable fields of a staff record.
type StaffInput struct {
	Name        string  `json:"name"`
	MobNo       string  `json:"mob_no"`
	Address     string  `json:"address"`
	JoiningDate string  `json:"joining_date"`
	LeavingDate *string `json:"leaving_date,omitempty"`
}

// CustomerFilter captures the predicates the filtered-list endpoint accepts.
// StartDate is interpreted as "joining date on or after".
type CustomerFilter struct {
	PurposeID *int64
	StaffID   *int64
	StartDate string
}

// Empty reports whether no server-side predicate is active.
func (f CustomerFilter) Empty() bool {
	return f.PurposeID == nil && f.StaffID == nil && f.StartDate == ""
}
