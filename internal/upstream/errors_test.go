package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/verilocal/admin-gateway/pkg/config"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

func platformErr(t *testing.T, status int, body string) error {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := platform.NewClient(config.PlatformConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, callErr := client.GetPackage(context.Background(), "x")
	if callErr == nil {
		t.Fatal("expected upstream call to fail")
	}
	return callErr
}

func TestBackendMessagePreferredVerbatim(t *testing.T) {
	err := DependencyError(platformErr(t, http.StatusOK, `{"success":false,"message":"promo window closed"}`), "could not save")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
	if typed.Message() != "promo window closed" {
		t.Fatalf("expected verbatim backend message, got %q", typed.Message())
	}
}

func TestFallbackWhenNoBackendMessage(t *testing.T) {
	err := DependencyError(errors.New("dial tcp: refused"), "could not save package")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "could not save package" {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestNotFoundMapsToNotFoundCode(t *testing.T) {
	err := DependencyError(platformErr(t, http.StatusNotFound, `{"success":false,"message":"no such entry"}`), "could not load")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
	if typed.Message() != "no such entry" {
		t.Fatalf("expected backend message, got %q", typed.Message())
	}
}
