package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// fakeDoer scripts API responses per "METHOD path" key and records every
// call in order.
type fakeDoer struct {
	mu        sync.Mutex
	responses map[string]scriptedResponse
	calls     []string
}

type scriptedResponse struct {
	status int
	env    Envelope
	err    error
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{responses: make(map[string]scriptedResponse)}
}

func (f *fakeDoer) script(method, path string, status int, env Envelope) {
	f.responses[method+" "+path] = scriptedResponse{status: status, env: env}
}

func (f *fakeDoer) scriptError(method, path string, err error) {
	f.responses[method+" "+path] = scriptedResponse{err: err}
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	key := req.Method + " " + req.URL.Path
	if req.URL.RawQuery != "" {
		if _, ok := f.responses[key+"?"+req.URL.RawQuery]; ok {
			key = key + "?" + req.URL.RawQuery
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no scripted response for %s", key)
	}
	if resp.err != nil {
		return nil, resp.err
	}

	body, _ := json.Marshal(resp.env)
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

func (f *fakeDoer) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (f *fakeDoer) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestClient(doer *fakeDoer) *Client {
	return &Client{BaseURL: "http://api.test", HTTP: doer}
}

func successEnvelope(result any) Envelope {
	data, _ := json.Marshal(result)
	return Envelope{Code: codeSuccess, Result: data}
}

func failureEnvelope(code int, message string) Envelope {
	return Envelope{Code: code, Message: message}
}

func testIdentity(role string) map[string]string {
	return map[string]string{
		"userId":   "u-1",
		"email":    "rider@example.com",
		"fullName": "Test Rider",
		"role":     role,
	}
}
