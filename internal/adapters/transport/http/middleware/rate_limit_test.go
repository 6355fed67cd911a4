package middleware

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitPerIP_Basic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitPerIP(1, 1, 100, time.Hour))
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

	req := func(addr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest("GET", "/", nil)
		httpReq.RemoteAddr = addr
		r.ServeHTTP(w, httpReq)
		return w
	}

	if w := req("1.2.3.4:12345"); w.Code != 200 {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := req("1.2.3.4:12345"); w.Code != 429 {
		t.Fatalf("want 429, got %d", w.Code)
	}
}

func TestRateLimitPerIP_DifferentHosts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitPerIP(1, 1, 100, time.Hour))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	req := func(addr string) int {
		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest("GET", "/", nil)
		httpReq.RemoteAddr = addr
		r.ServeHTTP(w, httpReq)
		return w.Code
	}

	if code := req("10.0.0.1:1111"); code != 200 {
		t.Fatalf("host A first request must pass, got %d", code)
	}
	if code := req("10.0.0.2:2222"); code != 200 {
		t.Fatalf("host B first request must pass independently, got %d", code)
	}
}

// Exercises the last-seen bookkeeping from many requests while the cleanup
// ticker reads it; run with -race to catch unsynchronized access.
func TestRateLimitPerIP_ConcurrentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitPerIP(1000, 1000, 100, 20*time.Millisecond))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest("GET", "/", nil)
				req.RemoteAddr = fmt.Sprintf("10.0.0.%d:1234", i%3)
				r.ServeHTTP(w, req)
				if w.Code != 200 {
					t.Errorf("want 200, got %d", w.Code)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRateLimitPerIP_TTLEvicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ttl := 10 * time.Millisecond
	r := gin.New()
	r.Use(RateLimitPerIP(1, 1, 10, ttl))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	req := func() int {
		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest("GET", "/", nil)
		httpReq.RemoteAddr = "127.0.0.1:5555"
		r.ServeHTTP(w, httpReq)
		return w.Code
	}

	if code := req(); code != 200 {
		t.Fatalf("first req want 200 got %d", code)
	}
	if code := req(); code != 429 {
		t.Fatalf("second immediate req want 429 got %d", code)
	}
	time.Sleep(3 * ttl)
	if code := req(); code != 200 {
		t.Fatalf("after eviction want 200 got %d", code)
	}
}
