package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

// SessionHeader carries the visitor session token both ways
const SessionHeader = "X-Visitor-Session"

// APIError is a non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	// RetryAfter is set on 429 responses
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client calls the restaurant API. It is safe for concurrent use; WithToken
// returns a copy rather than changing the receiver.
type Client struct {
	baseURL   string
	http      *http.Client
	token     string
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracing wraps the transport so every call emits a client span
func WithTracing() Option {
	return func(c *Client) { c.http = tracing.WrapHTTPClient(c.http) }
}

// WithUserAgent sets the User-Agent sent with every request, which the
// visitor counter uses for its device and browser breakdowns.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a client that sends token as a bearer credential
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) Token() string { return c.token }

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	header      http.Header
}

func jsonRequest(method, path string, body interface{}) (*request, error) {
	req := &request{method: method, path: path}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, r *request) (*http.Response, error) {
	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.header {
		req.Header[k] = v
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

// decodeError reads {"error": ...} bodies and falls back to the raw text
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}
	return apiErr
}

// call sends r and decodes the JSON response into out when out is not nil
func (c *Client) call(ctx context.Context, r *request, out interface{}) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := jsonRequest(method, path, body)
	if err != nil {
		return err
	}
	return c.call(ctx, req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func escape(id string) string { return url.PathEscape(id) }

// Auth

func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.send(ctx, http.MethodPost, "/api/login", domain.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/api/health", nil)
}

// Menu

func (c *Client) Menu(ctx context.Context) ([]*domain.MenuItem, error) {
	var items []*domain.MenuItem
	return items, c.get(ctx, "/api/menu", &items)
}

func (c *Client) CreateMenuItem(ctx context.Context, in *domain.MenuItemInput) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := c.send(ctx, http.MethodPost, "/api/menu", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, in *domain.MenuItemInput) (*domain.MenuItem, error) {
	var resp struct {
		Item *domain.MenuItem `json:"item"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/menu/"+escape(id), in, &resp); err != nil {
		return nil, err
	}
	return resp.Item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/menu/"+escape(id), nil, nil)
}

// Categories

func (c *Client) Categories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	return categories, c.get(ctx, "/api/categories", &categories)
}

func (c *Client) CreateCategory(ctx context.Context, in *domain.CategoryInput) (*domain.Category, error) {
	var category domain.Category
	if err := c.send(ctx, http.MethodPost, "/api/categories", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in *domain.CategoryInput) (*domain.Category, error) {
	var resp struct {
		Category *domain.Category `json:"category"`
	}
	if err := c.send(ctx, http.MethodPut, "/api/categories/"+escape(id), in, &resp); err != nil {
		return nil, err
	}
	return resp.Category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/categories/"+escape(id), nil, nil)
}

// Reservations

type created struct {
	ID string `json:"id"`
}

// CreateReservation returns the new reservation's id
func (c *Client) CreateReservation(ctx context.Context, req *domain.CreateReservationRequest) (string, error) {
	var resp created
	if err := c.send(ctx, http.MethodPost, "/api/reservations", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Reservations(ctx context.Context) ([]*domain.Reservation, error) {
	var list []*domain.Reservation
	return list, c.get(ctx, "/api/reservations", &list)
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	body := domain.UpdateReservationStatusRequest{Status: status}
	return c.send(ctx, http.MethodPut, "/api/reservations/"+escape(id)+"/status", body, nil)
}

func (c *Client) DeleteReservation(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/reservations/"+escape(id), nil, nil)
}

// Messages

func (c *Client) CreateMessage(ctx context.Context, req *domain.CreateMessageRequest) (string, error) {
	var resp created
	if err := c.send(ctx, http.MethodPost, "/api/messages", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Messages(ctx context.Context) ([]*domain.ContactMessage, error) {
	var list []*domain.ContactMessage
	return list, c.get(ctx, "/api/messages", &list)
}

func (c *Client) UpdateMessageStatus(ctx context.Context, id string, status domain.MessageStatus) error {
	body := domain.UpdateMessageStatusRequest{Status: status}
	return c.send(ctx, http.MethodPut, "/api/messages/"+escape(id)+"/status", body, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/messages/"+escape(id), nil, nil)
}

// Download is an exported file
type Download struct {
	Filename string
	Data     []byte
}

func (c *Client) ExportReservations(ctx context.Context) (*Download, error) {
	return c.download(ctx, "/api/reservations/export")
}

func (c *Client) ExportMessages(ctx context.Context) (*Download, error) {
	return c.download(ctx, "/api/messages/export")
}

func (c *Client) download(ctx context.Context, path string) (*Download, error) {
	resp, err := c.do(ctx, &request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	d := &Download{Data: data}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}

// Users

func (c *Client) Users(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	return users, c.get(ctx, "/api/users", &users)
}

func (c *Client) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.send(ctx, http.MethodPost, "/api/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/users/"+escape(id), nil, nil)
}

// Content

// Content returns nil when the key was never saved
func (c *Client) Content(ctx context.Context, key domain.ContentKey) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/content/"+escape(string(key)), &raw); err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	return raw, nil
}

func (c *Client) ContentKeys(ctx context.Context) ([]domain.ContentKey, error) {
	var keys []domain.ContentKey
	return keys, c.get(ctx, "/api/content", &keys)
}

func (c *Client) SetContent(ctx context.Context, key domain.ContentKey, raw json.RawMessage) error {
	return c.send(ctx, http.MethodPut, "/api/content/"+escape(string(key)), raw, nil)
}

func (c *Client) DeleteContent(ctx context.Context, key domain.ContentKey) error {
	return c.send(ctx, http.MethodDelete, "/api/content/"+escape(string(key)), nil, nil)
}

// Images

type UploadResult struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// UploadImage posts data as the multipart field "image"
func (c *Client) UploadImage(ctx context.Context, filename, mimeType string, data []byte) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var result UploadResult
	err = c.call(ctx, &request{
		method:      http.MethodPost,
		path:        "/api/upload/image",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Image(ctx context.Context, id string) (*domain.ImageView, error) {
	var view domain.ImageView
	if err := c.get(ctx, "/api/images/"+escape(id), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/images/"+escape(id), nil, nil)
}

// Visitors

func (c *Client) VisitorCount(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	return resp.Count, c.get(ctx, "/api/visitors", &resp)
}

// TrackVisit records a page view. Pass back the returned SessionToken on
// later calls so one browsing session is only counted once.
func (c *Client) TrackVisit(ctx context.Context, sessionToken string) (*domain.TrackResult, error) {
	req := &request{method: http.MethodPost, path: "/api/visitors/track"}
	if sessionToken != "" {
		req.header = http.Header{SessionHeader: []string{sessionToken}}
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result domain.TrackResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode track response: %w", err)
	}
	if result.SessionToken == "" {
		result.SessionToken = resp.Header.Get(SessionHeader)
	}
	if result.SessionToken == "" {
		result.SessionToken = sessionToken
	}
	return &result, nil
}

// VisitorStats fetches the dashboard; top <= 0 uses the server default
func (c *Client) VisitorStats(ctx context.Context, top int) (*domain.VisitorStats, error) {
	req := &request{method: http.MethodGet, path: "/api/visitors/stats"}
	if top > 0 {
		req.query = url.Values{"top": []string{strconv.Itoa(top)}}
	}
	var stats domain.VisitorStats
	if err := c.call(ctx, req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ResetVisitors(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/visitors/reset", nil, nil)
}
