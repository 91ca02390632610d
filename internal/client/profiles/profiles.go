// Package profiles reads and writes user profile records in the hosted
// document store. Each user owns one document named after their user id.
package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ehimavote/evote/internal/client/client"
	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
)

const (
	DefaultBaseURL    = "https://firestore.googleapis.com"
	DefaultCollection = "E-HimaVote"

	msgGetFailed  = "Failed to get user data"
	msgSaveFailed = "Failed to save user data"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// ProfileStoreError is any failed read or write other than a missing document.
// StatusCode is zero when no response was received.
type ProfileStoreError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProfileStoreError) Error() string {
	return e.Message
}

func (e *ProfileStoreError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	projectID  string
	apiKey     string
	collection string
	httpClient *http.Client
	now        func() time.Time
	logger     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCollection(name string) Option {
	return func(c *Client) { c.collection = name }
}

// WithClock sets the source of the createdAt timestamp written on save.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL, projectID, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectID:  projectID,
		apiKey:     apiKey,
		collection: DefaultCollection,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) documentURL(userID string) string {
	return fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents/%s/%s?key=%s",
		c.baseURL,
		url.PathEscape(c.projectID),
		url.PathEscape(c.collection),
		url.PathEscape(userID),
		url.QueryEscape(c.apiKey),
	)
}

// GetProfile returns the stored profile of userID, or nil when the user has
// no document yet. Missing fields decode as zero values.
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	status, data, err := c.do(ctx, http.MethodGet, userID, nil)
	if err != nil {
		return nil, &ProfileStoreError{Message: msgGetFailed, Err: err}
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status > 299 {
		return nil, c.statusError(ctx, status, data, msgGetFailed)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ProfileStoreError{StatusCode: status, Message: msgGetFailed, Err: fmt.Errorf("decode document: %w", err)}
	}
	return doc.Fields.profile(), nil
}

// SaveProfile replaces the document of userID with p, stamped with the
// current time as createdAt.
func (c *Client) SaveProfile(ctx context.Context, userID string, p models.UserProfile) error {
	body, err := json.Marshal(document{Fields: newFields(p, c.now())})
	if err != nil {
		return &ProfileStoreError{Message: msgSaveFailed, Err: err}
	}

	status, data, err := c.do(ctx, http.MethodPatch, userID, body)
	if err != nil {
		return &ProfileStoreError{Message: msgSaveFailed, Err: err}
	}
	if status < 200 || status > 299 {
		return c.statusError(ctx, status, data, msgSaveFailed)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, userID string, body []byte) (int, []byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.documentURL(userID), r)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "profile store request failed", "method", method, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", client.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

func (c *Client) statusError(ctx context.Context, status int, data []byte, fallback string) *ProfileStoreError {
	var er struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(data, &er)

	msg := er.Error.Message
	if msg == "" {
		msg = fallback
	}
	c.logger.Info(ctx, "profile store request rejected", "status", status, "upstream", er.Error.Message)

	var cause error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		cause = client.ErrUnauthorized
	case status >= 500:
		cause = client.ErrUnavailable
	default:
		cause = errors.New(http.StatusText(status))
	}
	return &ProfileStoreError{StatusCode: status, Message: msg, Err: cause}
}

// Wire representation of a document: every field is a typed wrapper object.

type document struct {
	Name       string `json:"name,omitempty"`
	Fields     fields `json:"fields"`
	CreateTime string `json:"createTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}

type fields struct {
	Name         *stringValue    `json:"name,omitempty"`
	NIM          *integerValue   `json:"nim,omitempty"`
	StudyProgram *stringValue    `json:"studyProgram,omitempty"`
	Batch        *integerValue   `json:"batch,omitempty"`
	CreatedAt    *timestampValue `json:"createdAt,omitempty"`
}

type stringValue struct {
	StringValue string `json:"stringValue"`
}

type integerValue struct {
	IntegerValue wireInt `json:"integerValue"`
}

type timestampValue struct {
	TimestampValue string `json:"timestampValue"`
}

// wireInt is a 64-bit integer sent as a decimal string. Bare JSON numbers are
// accepted on decode.
type wireInt int64

func (w wireInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(w), 10))
}

func (w *wireInt) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("integerValue: %w", err)
		}
		*w = wireInt(n)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		n = 0
	}
	*w = wireInt(n)
	return nil
}

func newFields(p models.UserProfile, now time.Time) fields {
	return fields{
		Name:         &stringValue{p.Name},
		NIM:          &integerValue{wireInt(p.NIM)},
		StudyProgram: &stringValue{p.StudyProgram},
		Batch:        &integerValue{wireInt(p.Batch)},
		CreatedAt:    &timestampValue{now.UTC().Format(timestampLayout)},
	}
}

func (f fields) profile() *models.UserProfile {
	p := &models.UserProfile{}
	if f.Name != nil {
		p.Name = f.Name.StringValue
	}
	if f.NIM != nil {
		p.NIM = int64(f.NIM.IntegerValue)
	}
	if f.StudyProgram != nil {
		p.StudyProgram = f.StudyProgram.StringValue
	}
	if f.Batch != nil {
		p.Batch = int64(f.Batch.IntegerValue)
	}
	return p
}
