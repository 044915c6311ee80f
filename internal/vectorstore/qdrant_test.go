package vectorstore

import (
	"context"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestGRPCEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
		wantTLS  bool
	}{
		{
			name:     "default HTTP port",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "custom port",
			urlStr:   "http://qdrant:9000",
			wantHost: "qdrant",
			wantPort: 9001,
		},
		{
			name:     "URL without port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "URL without hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "https enables TLS",
			urlStr:   "https://cloud.qdrant.io:6333",
			wantHost: "cloud.qdrant.io",
			wantPort: 6334,
			wantTLS:  true,
		},
		{
			name:    "invalid URL",
			urlStr:  "://invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, useTLS, err := grpcEndpoint(tt.urlStr)
			if tt.wantErr {
				if err == nil {
					t.Error("grpcEndpoint() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("grpcEndpoint() error = %v", err)
			}
			if host != tt.wantHost || port != tt.wantPort || useTLS != tt.wantTLS {
				t.Errorf("grpcEndpoint() = %s, %d, %v; want %s, %d, %v", host, port, useTLS, tt.wantHost, tt.wantPort, tt.wantTLS)
			}
		})
	}
}

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore(QdrantOptions{URL: "://invalid"})
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestBuildFilter(t *testing.T) {
	filter, err := buildFilter(nil)
	if err != nil || filter != nil {
		t.Fatalf("buildFilter(nil) = %v, %v; want nil, nil", filter, err)
	}

	filter, err = buildFilter(map[string]any{FilterDocType: "constitution", "priority": 1})
	if err != nil {
		t.Fatalf("buildFilter() error = %v", err)
	}
	if len(filter.Must) != 2 {
		t.Fatalf("buildFilter() must conditions = %d, want 2", len(filter.Must))
	}

	first := filter.Must[0].GetField()
	if first.GetKey() != FilterDocType || first.GetMatch().GetKeyword() != "constitution" {
		t.Errorf("first condition = %v", first)
	}
	second := filter.Must[1].GetField()
	if second.GetKey() != "priority" || second.GetMatch().GetInteger() != 1 {
		t.Errorf("second condition = %v", second)
	}

	if _, err := buildFilter(map[string]any{"score": 0.5}); err == nil {
		t.Error("buildFilter() should reject float values")
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"doc_type": "act",
		"priority": 3,
		"tags":     []any{"labour", true},
	})

	got := convertPayloadToMap(payload)
	if got["doc_type"] != "act" {
		t.Errorf("doc_type = %v", got["doc_type"])
	}
	if got["priority"] != int64(3) {
		t.Errorf("priority = %#v", got["priority"])
	}
	tags, ok := got["tags"].([]any)
	if !ok || len(tags) != 2 || tags[1] != true {
		t.Errorf("tags = %#v", got["tags"])
	}
}

func TestQdrantStore_EarlyReturns(t *testing.T) {
	// A zero store has no client; these paths must not touch it.
	store := &QdrantStore{}
	ctx := context.Background()

	if err := store.Upsert(ctx, "legal_passages", []Point{}); err != nil {
		t.Errorf("Upsert() with empty points error = %v", err)
	}
	if err := store.Delete(ctx, "legal_passages", nil); err != nil {
		t.Errorf("Delete() with empty IDs error = %v", err)
	}
	if _, err := store.Search(ctx, "legal_passages", []float32{1, 0}, 0, nil); err == nil {
		t.Error("Search() with k=0 should return error")
	}
	if _, err := store.Search(ctx, "legal_passages", []float32{1, 0}, 3, map[string]any{"x": 1.5}); err == nil {
		t.Error("Search() with unsupported filter should return error")
	}
}
