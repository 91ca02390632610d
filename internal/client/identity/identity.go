// Package identity is the client of the hosted password-based identity
// service (sign-up and sign-in over JSON/HTTP).
//
// Failures are returned as *AuthError carrying a localized message built from
// a fixed table of upstream error codes; codes outside the table pass the
// upstream message through unchanged. Transport failures unwrap to
// client.ErrUnavailable, rejected credentials to client.ErrUnauthorized.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ehimavote/evote/internal/client/client"
	"github.com/ehimavote/evote/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/message"
)

// DefaultBaseURL is the hosted identity service.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com"

// Response is the success payload of both sign-up and sign-in.
type Response struct {
	IDToken      string `json:"idToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// AuthError is a sign-up/sign-in failure. Message is ready to show to the user.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	printer    *message.Printer
	logger     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocale selects the language of AuthError messages ("id", "en").
func WithLocale(locale string) Option {
	return func(c *Client) { c.printer = NewPrinter(locale) }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		printer:    NewPrinter("id"),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignUp creates an account and returns its first token set.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Response, error) {
	return c.call(ctx, opSignUp, email, password)
}

// SignIn authenticates with email and password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Response, error) {
	return c.call(ctx, opSignIn, email, password)
}

func (c *Client) endpoint(op operation) string {
	return fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.baseURL, op, url.QueryEscape(c.apiKey))
}

func (c *Client) call(ctx context.Context, op operation, email, password string) (*Response, error) {
	body, err := json.Marshal(credentialsRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, c.fail(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(op), bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "identity request failed", "op", op.String(), "error", err)
		return nil, &AuthError{
			Message: c.printer.Sprintf(msgUnavailable),
			Err:     fmt.Errorf("%w: %v", client.ErrUnavailable, err),
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.Unmarshal(data, &er)
		c.logger.Info(ctx, "identity request rejected", "op", op.String(), "status", resp.StatusCode, "upstream", er.Error.Message)
		return nil, c.reject(op, resp.StatusCode, er.Error.Message)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, c.fail(op, fmt.Errorf("decode response: %w", err))
	}
	if out.IDToken == "" || out.LocalID == "" {
		c.logger.Warn(ctx, "identity response without token or user id", "op", op.String())
		return nil, c.fail(op, errors.New("response is missing idToken or localId"))
	}
	return &out, nil
}

func (c *Client) reject(op operation, status int, upstream string) *AuthError {
	code, text := describe(c.printer, op, upstream)

	var cause error
	switch {
	case isCredentialCode(code):
		cause = client.ErrUnauthorized
	case status >= 500:
		cause = client.ErrUnavailable
	default:
		cause = fmt.Errorf("%s: status %d: %s", op, status, upstream)
	}
	return &AuthError{Code: code, Message: text, Err: cause}
}

func (c *Client) fail(op operation, err error) *AuthError {
	return &AuthError{Message: c.printer.Sprintf(fallbackMessages[op]), Err: err}
}

func isCredentialCode(code string) bool {
	_, ok := credentialCodes[code]
	return ok
}

// TokenExpiry reads the exp claim of an id token. The signature is not
// verified: the token is only inspected, never trusted, on the client.
func TokenExpiry(idToken string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse id token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("id token has no exp claim")
	}
	return exp.Time, nil
}
