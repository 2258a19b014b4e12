package engine

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		wantErr bool
	}{
		{name: "magick backend", engine: "magick"},
		{name: "native backend", engine: "native"},
		{name: "unknown backend", engine: "gd", wantErr: true},
		{name: "empty name", engine: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.engine, "")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for engine %q", tt.engine)
				}
				if !strings.Contains(err.Error(), tt.engine) {
					t.Errorf("Error should name the engine, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if e == nil {
				t.Fatal("Expected an engine, got nil")
			}
		})
	}
}
