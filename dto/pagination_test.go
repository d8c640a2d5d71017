package dto

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		limit     int
		wantPages int
	}{
		{"partial last page", 45, 1, 20, 3},
		{"exact fit", 40, 2, 20, 2},
		{"single page", 5, 1, 20, 1},
		{"empty", 0, 1, 20, 0},
		{"one item", 1, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.total, tt.page, tt.limit)
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantPages)
			}
			if got.CurrentPage != tt.page || got.TotalItems != tt.total || got.ItemsPerPage != tt.limit {
				t.Errorf("envelope = %+v", got)
			}
		})
	}
}
