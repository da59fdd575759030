package httpx

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompression_IncidentListing(t *testing.T) {
	payload := `[` + strings.Repeat(`{"nome":"Vazamento","gravidade":"ALTA"},`, 200) + `{}]`
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, json.RawMessage(payload))
	})
	mw := Compression(CompressionConfig{Level: gzip.BestSpeed, MinSize: 256})

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
		wantGzip       bool
	}{
		{"accepts gzip", http.MethodGet, "gzip, deflate", true},
		{"gzip disabled by q=0", http.MethodGet, "gzip;q=0, deflate", false},
		{"no header", http.MethodGet, "", false},
		{"head request", http.MethodHead, "gzip", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/incidentes", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			mw(handler).ServeHTTP(rec, req)

			resp := rec.Result()
			t.Cleanup(func() { _ = resp.Body.Close() })
			gotGzip := resp.Header.Get("Content-Encoding") == "gzip"
			if gotGzip != tt.wantGzip {
				t.Fatalf("gzip = %v, want %v", gotGzip, tt.wantGzip)
			}
			if !tt.wantGzip {
				return
			}
			gr, err := gzip.NewReader(resp.Body)
			if err != nil {
				t.Fatalf("gzip reader: %v", err)
			}
			defer gr.Close()
			body, err := io.ReadAll(gr)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(string(body), "Vazamento") {
				t.Fatalf("unexpected body: %.60q", body)
			}
		})
	}
}

func TestCompression_SkipsRedirects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Compression(CompressionConfig{Level: gzip.DefaultCompression})(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q", loc)
	}
}

func TestAcceptsGzip(t *testing.T) {
	cases := map[string]bool{
		"":                    false,
		"gzip":                true,
		"br, gzip;q=0.5":      true,
		"gzip;q=0":            false,
		"x-gzip":              false,
		"deflate, GZIP;q=1.0": true,
	}
	for in, want := range cases {
		if got := acceptsGzip(in); got != want {
			t.Errorf("acceptsGzip(%q) = %v, want %v", in, got, want)
		}
	}
}
