package matrix

import (
	"errors"
	"net/http"
	"sync"
)

// spyTransport records every request it sees and either fails or forwards
// to next.
type spyTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	err      error
	next     http.RoundTripper
}

func (s *spyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if s.next == nil {
		return nil, errors.New("spy transport has no next round tripper")
	}
	return s.next.RoundTrip(req)
}

func (s *spyTransport) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newSpyClient(spy *spyTransport) *http.Client {
	return &http.Client{Transport: spy}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// failingBody is a response body whose reads always fail.
type failingBody struct {
	err error
}

func (b failingBody) Read([]byte) (int, error) { return 0, b.err }
func (b failingBody) Close() error             { return nil }
