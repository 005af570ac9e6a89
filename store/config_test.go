package store_test

import (
	"errors"
	"testing"

	"github.com/tailored-agentic-units/totalmap/store"
)

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()
	if cfg.Kind != store.KindHash {
		t.Errorf("Kind = %q, want %q", cfg.Kind, store.KindHash)
	}
}

func TestConfig_Merge(t *testing.T) {
	tests := []struct {
		name   string
		source store.Config
		want   string
	}{
		{name: "empty source keeps default", source: store.Config{}, want: store.KindHash},
		{name: "source overrides", source: store.Config{Kind: store.KindTree}, want: store.KindTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := store.DefaultConfig()
			cfg.Merge(&tt.source)
			if cfg.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", cfg.Kind, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{name: "empty defaults to hash", kind: ""},
		{name: "hash", kind: store.KindHash},
		{name: "tree", kind: store.KindTree},
		{name: "unknown", kind: "skiplist", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := store.New[string, int](&store.Config{Kind: tt.kind})
			if tt.wantErr {
				if !errors.Is(err, store.ErrUnknownKind) {
					t.Errorf("New() error = %v, want ErrUnknownKind", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
		})
	}
}
