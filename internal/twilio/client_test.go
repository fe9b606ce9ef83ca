package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("unexpected basic auth %q/%q", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.FormValue("From"); got != "whatsapp:+14155238886" {
			t.Errorf("unexpected From %q", got)
		}
		if got := r.FormValue("To"); got != "whatsapp:+911234567890" {
			t.Errorf("unexpected To %q", got)
		}
		if got := r.FormValue("Body"); got != "hello there" {
			t.Errorf("unexpected Body %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New("AC123", "secret", "whatsapp:+14155238886")
	c.baseURL = srv.URL

	if err := c.Send(context.Background(), "whatsapp:+911234567890", "hello there"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
}

func TestSendFailureSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code": 20003}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("AC123", "wrong", "whatsapp:+14155238886")
	c.baseURL = srv.URL

	if err := c.Send(context.Background(), "whatsapp:+911234567890", "hello"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
