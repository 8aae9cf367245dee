// Package client implements the storefront's core logic: the cookie-backed
// session store, route guard decisions, the two-step admin login flow and
// the checkout availability reconciler. It talks to the REST API through a
// small envelope-aware HTTP client and carries no rendering concerns.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Envelope is the API response shape. Code 1000 means business success.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

const codeSuccess = 1000

// ResultKind discriminates the three outcomes of an API call.
type ResultKind int

const (
	// Success is a business success; Payload holds the result.
	Success ResultKind = iota
	// BusinessFailure is a negative outcome the server understood; Message
	// is user-facing and the action is retryable.
	BusinessFailure
	// TransportFailure is a network or protocol fault; Err holds the cause
	// and Message a best-effort user-facing text.
	TransportFailure
)

// Result is the typed outcome of an API call. Callers switch on Kind
// instead of probing envelope fields.
type Result struct {
	Kind    ResultKind
	Payload json.RawMessage
	Message string
	Err     error
}

// Decode unmarshals a success payload into v.
func (r Result) Decode(v any) error {
	if r.Kind != Success {
		return fmt.Errorf("cannot decode non-success result")
	}
	if len(r.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(r.Payload, v)
}

// Doer issues HTTP requests. *http.Client satisfies it; tests substitute
// a scripted fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the envelope-aware API client. Session cookies are attached
// automatically by the underlying jar; callers never handle tokens.
type Client struct {
	BaseURL string
	HTTP    Doer
}

// NewClient builds a client with a cookie jar, matching the browser's
// credentialed-request behavior.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}
}

// Get issues a GET and classifies the response.
func (c *Client) Get(path string) Result {
	return c.do(http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body and classifies the response.
func (c *Client) Post(path string, body any) Result {
	return c.do(http.MethodPost, path, body)
}

const genericFailureMessage = "Something went wrong. Please try again."

func (c *Client) do(method, path string, body any) Result {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{Kind: TransportFailure, Message: genericFailureMessage, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return Result{Kind: TransportFailure, Message: genericFailureMessage, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{Kind: TransportFailure, Message: genericFailureMessage, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Kind: TransportFailure, Message: genericFailureMessage, Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(data, &env)

	// The envelope code is the authority on business outcomes: the server
	// pairs non-success codes with 4xx statuses, and both mean the same
	// retryable failure. Only an unreadable body is a transport fault.
	if decodeErr != nil || env.Code == 0 {
		msg := genericFailureMessage
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return Result{
			Kind:    TransportFailure,
			Message: msg,
			Err:     fmt.Errorf("unreadable response (status %d) for %s %s", resp.StatusCode, method, path),
		}
	}

	if env.Code != codeSuccess {
		msg := env.Message
		if msg == "" {
			msg = genericFailureMessage
		}
		return Result{Kind: BusinessFailure, Message: msg}
	}
	return Result{Kind: Success, Payload: env.Result, Message: env.Message}
}
