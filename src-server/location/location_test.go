package location_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"planningapp/src-server/location"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Tour Eiffel" {
			t.Errorf("q: got %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("requests must identify themselves")
		}
		w.Write([]byte(`[{
			"lat": "48.8582", "lon": "2.2945",
			"display_name": "Tour Eiffel, Paris, France",
			"address": {"city": "Paris", "country": "France"}
		}]`))
	}))
	defer server.Close()

	g := location.NewGeocoder(server.URL)
	info, err := g.Geocode(context.Background(), "Tour Eiffel")
	if err != nil {
		t.Fatal(err)
	}
	if info.Latitude != 48.8582 || info.Longitude != 2.2945 {
		t.Errorf("coords: got %+v", info)
	}
	if info.City != "Paris" || info.Country != "France" {
		t.Errorf("address: got %+v", info)
	}
}

func TestGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	g := location.NewGeocoder(server.URL)
	_, err := g.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, location.ErrNoResult) {
		t.Fatalf("got %v, want ErrNoResult", err)
	}
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"lat": "48.8582", "lon": "2.2945",
			"display_name": "5 Avenue Anatole France, Paris, France",
			"address": {"town": "Paris", "country": "France"}
		}`))
	}))
	defer server.Close()

	g := location.NewGeocoder(server.URL)
	info, err := g.ReverseGeocode(context.Background(), 48.8582, 2.2945)
	if err != nil {
		t.Fatal(err)
	}
	if info.Address != "5 Avenue Anatole France, Paris, France" {
		t.Errorf("address: got %q", info.Address)
	}
	if info.City != "Paris" {
		t.Errorf("town should fall back into City: got %q", info.City)
	}
}

func TestDistance(t *testing.T) {
	// Paris to Lyon, roughly 392 km
	d := location.Distance(48.8566, 2.3522, 45.7640, 4.8357)
	if math.Abs(d-392) > 5 {
		t.Errorf("Paris-Lyon: got %.1f km, want ~392", d)
	}
	if got := location.Distance(48.8566, 2.3522, 48.8566, 2.3522); got != 0 {
		t.Errorf("same point: got %f, want 0", got)
	}
}

func TestOptimizeRoute(t *testing.T) {
	paris := location.Info{Latitude: 48.8566, Longitude: 2.3522, City: "Paris"}
	lyon := location.Info{Latitude: 45.7640, Longitude: 4.8357, City: "Lyon"}
	dijon := location.Info{Latitude: 47.3220, Longitude: 5.0415, City: "Dijon"}
	marseille := location.Info{Latitude: 43.2965, Longitude: 5.3698, City: "Marseille"}

	// intermediate stops given in a bad order
	got := location.OptimizeRoute([]location.Info{paris, lyon, dijon, marseille})
	want := []string{"Paris", "Dijon", "Lyon", "Marseille"}
	for i, info := range got {
		if info.City != want[i] {
			t.Fatalf("stop %d: got %s, want %s (full: %v)", i, info.City, want[i], cities(got))
		}
	}
}

func TestOptimizeRouteShort(t *testing.T) {
	a := location.Info{Latitude: 1, Longitude: 1}
	b := location.Info{Latitude: 2, Longitude: 2}

	if got := location.OptimizeRoute(nil); len(got) != 0 {
		t.Errorf("nil input: got %v", got)
	}
	got := location.OptimizeRoute([]location.Info{a, b})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("two stops pass through unchanged: got %v", got)
	}
}

func cities(infos []location.Info) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.City
	}
	return out
}
