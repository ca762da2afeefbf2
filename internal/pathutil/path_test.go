package pathutil

import (
	"testing"
)

func TestChildPath(t *testing.T) {
	tests := []struct {
		name       string
		parentPath string
		parentName string
		want       string
	}{
		{"root parent", "/", "Docs", "/Docs/"},
		{"nested parent", "/Docs/", "Receipts", "/Docs/Receipts/"},
		{"deeply nested", "/Docs/Receipts/", "2024", "/Docs/Receipts/2024/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChildPath(tt.parentPath, tt.parentName); got != tt.want {
				t.Errorf("ChildPath(%q, %q) = %q, want %q", tt.parentPath, tt.parentName, got, tt.want)
			}
		})
	}
}
