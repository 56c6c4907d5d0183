package registrar_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/domain-scout/internal/registrar"
)

const (
	testAPIKey    = "test-key"
	testAPISecret = "test-secret"
)

func newTestGoDaddy(t *testing.T, handler http.HandlerFunc) (*registrar.GoDaddy, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := registrar.NewGoDaddy(srv.URL, testAPIKey, testAPISecret,
		registrar.WithHTTPClient(srv.Client()))
	return g, srv
}

func TestGoDaddy_CheckAvailable(t *testing.T) {
	g, _ := newTestGoDaddy(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("domain"); got != "petly.io" {
			t.Errorf("expected domain=petly.io, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available": true, "definitive": true, "price": 12990000}`))
	})

	avail, err := g.Check(context.Background(), "petly.io")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !avail.Available {
		t.Fatal("expected available verdict")
	}
	if !avail.HasPrice {
		t.Fatal("expected a price")
	}
	if avail.Price != 12.99 {
		t.Fatalf("expected price 12.99 from micro-units, got %v", avail.Price)
	}
}

func TestGoDaddy_CheckTaken(t *testing.T) {
	g, _ := newTestGoDaddy(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available": false, "definitive": true}`))
	})

	avail, err := g.Check(context.Background(), "google.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if avail.Available {
		t.Fatal("expected taken verdict")
	}
	if avail.HasPrice {
		t.Fatal("expected no price without a price field")
	}
}

func TestGoDaddy_RateLimited(t *testing.T) {
	g, _ := newTestGoDaddy(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Check(context.Background(), "petly.io")
	if !errors.Is(err, registrar.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGoDaddy_ServerError(t *testing.T) {
	g, _ := newTestGoDaddy(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := g.Check(context.Background(), "petly.io")
	if err == nil {
		t.Fatal("expected an error for a 502 response")
	}
	if errors.Is(err, registrar.ErrRateLimited) {
		t.Fatal("502 must not map to ErrRateLimited")
	}
}

func TestGoDaddy_SendsSSOKeyAuth(t *testing.T) {
	var gotAuth string
	g, _ := newTestGoDaddy(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available": true}`))
	})

	if _, err := g.Check(context.Background(), "petly.io"); err != nil {
		t.Fatalf("check: %v", err)
	}

	want := "sso-key " + testAPIKey + ":" + testAPISecret
	if gotAuth != want {
		t.Fatalf("expected Authorization %q, got %q", want, gotAuth)
	}
}

func TestGoDaddy_NotConfigured(t *testing.T) {
	g := registrar.NewGoDaddy("https://example.invalid", "", "")

	_, err := g.Check(context.Background(), "petly.io")
	if !errors.Is(err, registrar.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
