// Package sourcestest serves canned pages for parser tests.
package sourcestest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gaurav-prasanna/finpipe/config"
	"github.com/gaurav-prasanna/finpipe/sources"
	"golang.org/x/text/encoding/korean"
)

// Page is one canned response.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

// HTML is a UTF-8 page.
func HTML(body string) Page {
	return Page{Status: http.StatusOK, ContentType: "text/html; charset=utf-8", Body: []byte(body)}
}

// EUCKR is a page encoded as EUC-KR that does not declare its charset, the
// way Naver Finance serves them.
func EUCKR(t testing.TB, body string) Page {
	t.Helper()
	enc, err := korean.EUCKR.NewEncoder().String(body)
	if err != nil {
		t.Fatalf("encoding fixture as EUC-KR: %v", err)
	}
	return Page{Status: http.StatusOK, ContentType: "text/html", Body: []byte(enc)}
}

// JSON is an application/json page.
func JSON(body string) Page {
	return Page{Status: http.StatusOK, ContentType: "application/json", Body: []byte(body)}
}

// Status is an empty page with the given status code.
func Status(code int) Page {
	return Page{Status: code, ContentType: "text/html"}
}

// Server routes requests to canned pages. A route is either a path or a path
// with its raw query ("/a?b=c"); the exact form wins. Unrouted requests get 404.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Page
	hits   map[string]int
}

// NewServer starts a Server and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]Page{}, hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers page under route.
func (s *Server) Handle(route string, page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = page
}

// Hits returns how many requests route has served.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	route := r.URL.Path
	if r.URL.RawQuery != "" {
		if _, ok := s.routes[route+"?"+r.URL.RawQuery]; ok {
			route += "?" + r.URL.RawQuery
		}
	}
	page, ok := s.routes[route]
	s.hits[route]++
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if page.ContentType != "" {
		w.Header().Set("Content-Type", page.ContentType)
	}
	w.WriteHeader(page.Status)
	_, _ = w.Write(page.Body)
}

// Endpoints points every site at the server.
func (s *Server) Endpoints() config.Endpoints {
	return config.Endpoints{
		NaverFinance: s.URL,
		FnGuide:      s.URL + "/SVO2/ASP",
		Investing:    s.URL,
		CoinGecko:    s.URL + "/api/v3",
		Yahoo:        s.URL,
		MarketWatch:  s.URL,
		SECEdgar:     "https://www.sec.gov",
	}
}

// Toolkit returns a toolkit whose parsers read from the server.
func (s *Server) Toolkit() sources.Toolkit {
	return sources.Toolkit{Endpoints: s.Endpoints(), Timeout: 5 * time.Second}
}
