package encoder

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectAndEncode_ParsesFaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/detect" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("expected multipart/form-data, got %q", r.Header.Get("Content-Type"))
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected a part named \"file\": %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"dim": 4,
			"faces": []map[string]any{
				{
					"box":       map[string]int{"top": 1, "right": 2, "bottom": 3, "left": 4},
					"embedding": []float64{0.1, 0.2, 0.3, 0.4},
				},
			},
		})
	}))
	defer srv.Close()

	faces, err := NewClient(srv.URL).DetectAndEncode(context.Background(), []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}
	if faces[0].Box.Top != 1 || faces[0].Box.Left != 4 {
		t.Errorf("unexpected box: %+v", faces[0].Box)
	}
	if len(faces[0].Embedding) != 4 || faces[0].Embedding[1] != 0.2 {
		t.Errorf("unexpected embedding: %v", faces[0].Embedding)
	}
}

func TestDetectAndEncode_ZeroFacesIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"dim": 128, "faces": []any{}})
	}))
	defer srv.Close()

	faces, err := NewClient(srv.URL).DetectAndEncode(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faces) != 0 {
		t.Errorf("expected empty result, got %d faces", len(faces))
	}
}

func TestDetectAndEncode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).DetectAndEncode(context.Background(), []byte("image")); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestDetectAndEncode_EmptyEmbeddingRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"dim":   128,
			"faces": []map[string]any{{"embedding": []float64{}}},
		})
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).DetectAndEncode(context.Background(), []byte("image")); err == nil {
		t.Fatal("expected error for a face without an embedding")
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"webp", []byte{0x52, 0x49, 0x46, 0x46, 0, 0, 0, 0, 0x57, 0x45, 0x42, 0x50}, "image/webp"},
		{"unknown", []byte("plain text"), "application/octet-stream"},
		{"short", []byte{0xFF}, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectMIMEType(tt.data); got != tt.want {
				t.Errorf("detectMIMEType(%s) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
