package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCallbackRouter_Code(t *testing.T) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	h := callbackRouter(codeCh, errCh)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	select {
	case code := <-codeCh:
		if code != "abc" {
			t.Errorf("expected code abc, got %q", code)
		}
	default:
		t.Fatal("expected a code on the channel")
	}
}

func TestCallbackRouter_Denied(t *testing.T) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	h := callbackRouter(codeCh, errCh)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	select {
	case err := <-errCh:
		if err.Error() != "authorization denied: access_denied" {
			t.Errorf("unexpected error: %v", err)
		}
	default:
		t.Fatal("expected an error on the channel")
	}
}

func TestCallbackRouter_SecondCallbackDropped(t *testing.T) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	h := callbackRouter(codeCh, errCh)

	for _, code := range []string{"first", "second"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code="+code, nil))
	}

	if got := <-codeCh; got != "first" {
		t.Errorf("expected first code, got %q", got)
	}
}
