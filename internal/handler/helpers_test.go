package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hifadhi/internal/domain"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("bad name: %w", domain.ErrValidation), http.StatusBadRequest},
		{"invalid parent", fmt.Errorf("no such parent: %w", domain.ErrInvalidParent), http.StatusBadRequest},
		{"not found", fmt.Errorf("item x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"store failure", fmt.Errorf("create item: %w: %w", domain.ErrStore, fmt.Errorf("db down")), http.StatusInternalServerError},
		{"unknown", fmt.Errorf("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandleErrorDoesNotLeakStoreDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, fmt.Errorf("get item: %w: %w", domain.ErrStore, fmt.Errorf("connection to 10.0.0.5 refused")))

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("response leaked storage internals: %s", rec.Body.String())
	}
}
