package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name               string
		in                 PageRequest
		wantPage, wantSize int
		wantOffset         int
	}{
		{"empty_request", PageRequest{}, 1, DefaultPageSize, 0},
		{"explicit_values_kept", PageRequest{Page: 3, PageSize: 5}, 3, 5, 10},
		{"oversized_page_capped", PageRequest{Page: 2, PageSize: 1000}, 2, MaxPageSize, MaxPageSize},
		{"negative_values_reset", PageRequest{Page: -1, PageSize: -4}, 1, DefaultPageSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize || p.Offset() != tt.wantOffset {
				t.Errorf("got page %d size %d offset %d", p.Page, p.PageSize, p.Offset())
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("rounds_pages_up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
		if resp.TotalPages != 3 || !resp.HasMore {
			t.Errorf("expected 3 pages with more to come, got %d has_more=%v", resp.TotalPages, resp.HasMore)
		}
	})

	t.Run("last_page_has_no_more", func(t *testing.T) {
		resp := NewPageResponse([]int{5}, 3, 2, 5)
		if resp.HasMore {
			t.Error("expected has_more false on the last page")
		}
	})

	t.Run("nil_data_is_empty", func(t *testing.T) {
		resp := NewPageResponse[string](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty slice, got %v", resp.Data)
		}
		if resp.TotalPages != 0 || resp.HasMore {
			t.Errorf("expected 0 pages, got %d has_more=%v", resp.TotalPages, resp.HasMore)
		}
	})

	t.Run("zero_page_size_does_not_divide", func(t *testing.T) {
		resp := NewPageResponse([]int{}, 1, 0, 3)
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}
