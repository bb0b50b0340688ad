package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devanlim/busarrival/internal/provider"
)

func TestClientListStops(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("AccountKey")
		skip := r.URL.Query().Get("$skip")
		if skip != "500" {
			t.Errorf("$skip = %q, want 500", skip)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":[
			{"BusStopCode":"01012","RoadName":"Victoria St","Description":"Hotel Grand Pacific","Latitude":1.29685,"Longitude":103.85253}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	stops, err := c.ListStops(context.Background(), 500)
	if err != nil {
		t.Fatalf("ListStops: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("AccountKey header = %q, want test-key", gotKey)
	}
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(stops))
	}
	s := stops[0]
	if s.Code != "01012" || s.Name != "Hotel Grand Pacific" || s.RoadName != "Victoria St" {
		t.Errorf("field mapping wrong: %+v", s)
	}
	if s.Location.Lat != 1.29685 || s.Location.Lng != 103.85253 {
		t.Errorf("location mapping wrong: %+v", s.Location)
	}
}

func TestClientProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid AccountKey", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", 5*time.Second)
	_, err := c.ListStops(context.Background(), 0)

	var perr *provider.Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *provider.Error", err)
	}
	if perr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", perr.Status)
	}
}
