package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pawan-gold/goldcrest/internal/shared"
)

// Client wraps the association's REST backend. Every call maps to one
// (resource, operation) pair; any transport error or non-2xx status is a
// single generic failure regardless of response body. The client never
// retries — the one read retry lives at the service layer above.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL. No request timeout is
// configured beyond the transport defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type customerEnvelope struct {
	Status string   `json:"status"`
	Data   Customer `json:"data"`
}

type purposeListEnvelope struct {
	Status string    `json:"status"`
	Count  int       `json:"count"`
	Data   []Purpose `json:"data"`
}

type purposeEnvelope struct {
	Status string  `json:"status"`
	Data   Purpose `json:"data"`
}

type staffListEnvelope struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Data   []Staff `json:"data"`
}

type staffEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    Staff  `json:"data"`
}

type dailyCountEnvelope struct {
	Status string       `json:"status"`
	Days   int          `json:"days"`
	Data   []DailyCount `json:"data"`
}

type staffCountEnvelope struct {
	Status string       `json:"status"`
	Days   *int         `json:"days,omitempty"`
	Data   []StaffCount `json:"data"`
}

// ListCustomers fetches one page of the plain customer listing. purposeID is
// the only filter the plain endpoint understands.
func (c *Client) ListCustomers(ctx context.Context, page, limit int, purposeID *int64) (CustomerPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if purposeID != nil {
		query.Set("purpose_id", strconv.FormatInt(*purposeID, 10))
	}
	var envelope CustomerPage
	if err := c.do(ctx, http.MethodGet, "/customers", query, nil, &envelope); err != nil {
		return CustomerPage{}, err
	}
	return envelope, nil
}

// FilterCustomers fetches one page of the filtered listing. The envelope may
// carry an aggregate analytics block for the filtered set.
func (c *Client) FilterCustomers(ctx context.Context, page, limit int, filter CustomerFilter) (CustomerPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filter.PurposeID != nil {
		query.Set("purpose_id", strconv.FormatInt(*filter.PurposeID, 10))
	}
	if filter.StaffID != nil {
		query.Set("staff_id", strconv.FormatInt(*filter.StaffID, 10))
	}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	var envelope CustomerPage
	if err := c.do(ctx, http.MethodGet, "/customers/filter", query, nil, &envelope); err != nil {
		return CustomerPage{}, err
	}
	return envelope, nil
}

// GetCustomer fetches a single customer by id.
func (c *Client) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	var envelope customerEnvelope
	if err := c.do(ctx, http.MethodGet, "/customers/"+strconv.FormatInt(id, 10), nil, nil, &envelope); err != nil {
		return Customer{}, err
	}
	return envelope.Data, nil
}

// CreateCustomer adds a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) error {
	var response ack
	return c.do(ctx, http.MethodPost, "/add_customer", nil, input, &response)
}

// UpdateCustomer applies a partial update; only supplied fields change.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, patch CustomerPatch) error {
	var response ack
	return c.do(ctx, http.MethodPut, "/customers/"+strconv.FormatInt(id, 10), nil, patch, &response)
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	var response ack
	return c.do(ctx, http.MethodDelete, "/customers/"+strconv.FormatInt(id, 10), nil, nil, &response)
}

// ListPurposes fetches the flat purpose collection.
func (c *Client) ListPurposes(ctx context.Context) ([]Purpose, error) {
	var envelope purposeListEnvelope
	if err := c.do(ctx, http.MethodGet, "/purposes", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetPurpose fetches a single purpose by id.
func (c *Client) GetPurpose(ctx context.Context, id int64) (Purpose, error) {
	var envelope purposeEnvelope
	if err := c.do(ctx, http.MethodGet, "/purpose/"+strconv.FormatInt(id, 10), nil, nil, &envelope); err != nil {
		return Purpose{}, err
	}
	return envelope.Data, nil
}

// CreatePurpose adds a new purpose.
func (c *Client) CreatePurpose(ctx context.Context, input PurposeInput) error {
	var response ack
	return c.do(ctx, http.MethodPost, "/purpose", nil, input, &response)
}

// UpdatePurpose applies a partial purpose update.
func (c *Client) UpdatePurpose(ctx context.Context, id int64, input PurposeInput) error {
	var response ack
	return c.do(ctx, http.MethodPut, "/purpose/"+strconv.FormatInt(id, 10), nil, input, &response)
}

// DeletePurpose removes a purpose.
func (c *Client) DeletePurpose(ctx context.Context, id int64) error {
	var response ack
	return c.do(ctx, http.MethodDelete, "/purpose/"+strconv.FormatInt(id, 10), nil, nil, &response)
}

// ListStaff fetches the flat staff collection.
func (c *Client) ListStaff(ctx context.Context) ([]Staff, error) {
	var envelope staffListEnvelope
	if err := c.do(ctx, http.MethodGet, "/staff", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateStaff adds a new staff record.
func (c *Client) CreateStaff(ctx context.Context, input StaffInput) error {
	var response ack
	return c.do(ctx, http.MethodPost, "/staff", nil, input, &response)
}

// StaffByMobile looks up at most one staff record by exact mobile number.
func (c *Client) StaffByMobile(ctx context.Context, mobile string) (Staff, error) {
	var envelope staffEnvelope
	if err := c.do(ctx, http.MethodGet, "/staff_by_mobile/"+url.PathEscape(mobile), nil, nil, &envelope); err != nil {
		return Staff{}, err
	}
	return envelope.Data, nil
}

// LastNDays fetches the customers-added-per-day series for the trailing
// window. The series arrives most-recent-first.
func (c *Client) LastNDays(ctx context.Context, days int) ([]DailyCount, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))
	var envelope dailyCountEnvelope
	if err := c.do(ctx, http.MethodGet, "/analytics/last-n-days", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// StaffCounts fetches the staff leaderboard, optionally scoped to a trailing
// window of days.
func (c *Client) StaffCounts(ctx context.Context, days *int) ([]StaffCount, error) {
	var query url.Values
	if days != nil {
		query = url.Values{}
		query.Set("days", strconv.Itoa(*days))
	}
	var envelope staffCountEnvelope
	if err := c.do(ctx, http.MethodGet, "/analytics/staff-count", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Health checks whether the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	var response ack
	return c.do(ctx, http.MethodGet, "/health", nil, nil, &response)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("backend: %s %s: %w", method, path, shared.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend: %s %s returned status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}
