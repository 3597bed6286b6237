package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"meetspot/pkg/utils"
)

func geocodeBody(lat, lng float64) string {
	return fmt.Sprintf(`{"status":"OK","results":[{"geometry":{"location":{"lat":%f,"lng":%f}}}]}`, lat, lng)
}

func TestGeocode_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "London Bridge Station" {
			t.Errorf("address param = %q", got)
		}
		if r.URL.Query().Get("key") == "" {
			t.Error("missing key param")
		}
		fmt.Fprint(w, geocodeBody(51.5079, -0.0877))
	}))
	defer server.Close()

	client := NewGoogleGeocodingClient("test-key", server.URL)
	got, err := client.Geocode(context.Background(), "London Bridge Station")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if got.Lat != 51.5079 || got.Lng != -0.0877 {
		t.Errorf("coordinate = %v", got)
	}
}

func TestGeocode_BlankAddressFailsFast(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewGoogleGeocodingClient("test-key", server.URL)
	for _, address := range []string{"", "   ", "\t\n"} {
		if _, err := client.Geocode(context.Background(), address); !errors.Is(err, utils.ErrInvalidInput) {
			t.Errorf("Geocode(%q) error = %v, want ErrInvalidInput", address, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("provider was called %d times for blank input", n)
	}
}

func TestGeocode_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer server.Close()

	client := NewGoogleGeocodingClient("test-key", server.URL)
	_, err := client.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, utils.ErrGeocodeFailed) {
		t.Fatalf("error = %v, want ErrGeocodeFailed", err)
	}
	// The failure must name the offending address.
	if want := "nowhere at all"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err, want)
	}
}

func TestGeocode_RetriesOnceOn5xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, geocodeBody(1, 2))
	}))
	defer server.Close()

	client := NewGoogleGeocodingClient("test-key", server.URL)
	got, err := client.Geocode(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("Geocode returned error after retry: %v", err)
	}
	if got.Lat != 1 || got.Lng != 2 {
		t.Errorf("coordinate = %v", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("provider calls = %d, want 2", n)
	}
}

func TestGeocode_NoUnboundedRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGoogleGeocodingClient("test-key", server.URL)
	_, err := client.Geocode(context.Background(), "somewhere")
	if !errors.Is(err, utils.ErrGeocodeFailed) {
		t.Fatalf("error = %v, want ErrGeocodeFailed", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("provider calls = %d, want exactly 2 (one retry)", n)
	}
}
