package staff

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseStaffFormDefaultsJoiningDateToToday(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Meena")
	form.Set("mob_no", "9333333333")

	parsed := parseStaffForm(postForm("/staff", form))

	assert.Equal(t, time.Now().Format("2006-01-02"), parsed.JoiningDate)
}

func TestParseStaffFormKeepsExplicitJoiningDate(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Meena")
	form.Set("mob_no", "9333333333")
	form.Set("joining_date", "2026-08-01")

	parsed := parseStaffForm(postForm("/staff", form))

	assert.Equal(t, "2026-08-01", parsed.JoiningDate)
}

func TestCreateSendsTodayWhenJoiningDateOmitted(t *testing.T) {
	api := &stubAPI{}
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), newTestService(api), nil, nil)

	form := url.Values{}
	form.Set("name", "Meena")
	form.Set("mob_no", "9333333333")
	rec := httptest.NewRecorder()
	h.Create(rec, postForm("/staff", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, time.Now().Format("2006-01-02"), api.lastCreate.JoiningDate)
}
