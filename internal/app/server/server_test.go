package server

import (
	"net/http"
	"testing"
	"time"

	"paydesk/internal/platform/config"
)

func TestNewHTTPServerAppliesTimeouts(t *testing.T) {
	cfg := config.Config{
		Addr:         ":9090",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}
	srv := newHTTPServer(cfg, http.NotFoundHandler())

	if srv.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout <= 0 {
		t.Fatal("read header timeout must be set")
	}
	if srv.ReadTimeout != 5*time.Second || srv.WriteTimeout != 30*time.Second || srv.IdleTimeout != time.Minute {
		t.Fatalf("timeouts not applied: read=%s write=%s idle=%s", srv.ReadTimeout, srv.WriteTimeout, srv.IdleTimeout)
	}
}
