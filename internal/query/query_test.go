package query

import (
	"fmt"
	"net/url"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     Params
	}{
		{
			name:     "defaults when empty",
			rawQuery: "",
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", Descending: true},
		},
		{
			name:     "explicit values",
			rawQuery: "page=3&limit=25&sortBy=views&sortType=asc&query=gopher",
			want:     Params{Page: 3, Limit: 25, SortBy: "views", Descending: false, Search: "gopher"},
		},
		{
			name:     "non-numeric page and limit fall back",
			rawQuery: "page=abc&limit=xyz",
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", Descending: true},
		},
		{
			name:     "zero and negative values fall back",
			rawQuery: "page=0&limit=-5",
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", Descending: true},
		},
		{
			name:     "unknown sort field falls back",
			rawQuery: "sortBy=password",
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", Descending: true},
		},
		{
			name:     "camelCase sort field is normalized",
			rawQuery: "sortBy=createdAt&sortType=desc",
			want:     Params{Page: 1, Limit: 10, SortBy: "created_at", Descending: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatalf("ParseQuery() error = %v", err)
			}

			got := ParseParams(values)
			if got != tt.want {
				t.Errorf("ParseParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 0, 23)
	for i := 0; i < 23; i++ {
		items = append(items, i)
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantFirst int
		wantPages int
	}{
		{name: "first page", page: 1, limit: 10, wantLen: 10, wantFirst: 0, wantPages: 3},
		{name: "middle page", page: 2, limit: 10, wantLen: 10, wantFirst: 10, wantPages: 3},
		{name: "short last page", page: 3, limit: 10, wantLen: 3, wantFirst: 20, wantPages: 3},
		{name: "page past the end", page: 9, limit: 10, wantLen: 0, wantPages: 3},
		{name: "limit larger than set", page: 1, limit: 100, wantLen: 23, wantFirst: 0, wantPages: 1},
		{name: "invalid page clamps", page: 0, limit: 10, wantLen: 10, wantFirst: 0, wantPages: 3},
		{name: "invalid limit clamps", page: 1, limit: -1, wantLen: 10, wantFirst: 0, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Paginate(items, Params{Page: tt.page, Limit: tt.limit})

			if len(result.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(result.Items), tt.wantLen)
			}
			if result.Total != 23 {
				t.Errorf("Total = %d, want 23", result.Total)
			}
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if tt.wantLen > 0 && result.Items[0] != tt.wantFirst {
				t.Errorf("Items[0] = %d, want %d", result.Items[0], tt.wantFirst)
			}
		})
	}
}

func TestPaginateInvariant(t *testing.T) {
	// For N matching items and limit L, page p holds min(L, N-(p-1)*L) items.
	for _, n := range []int{0, 1, 9, 10, 11, 50} {
		items := make([]string, n)
		for i := range items {
			items[i] = fmt.Sprintf("item-%d", i)
		}

		for page := 1; page <= 6; page++ {
			limit := 10
			result := Paginate(items, Params{Page: page, Limit: limit})

			want := n - (page-1)*limit
			if want > limit {
				want = limit
			}
			if want < 0 {
				want = 0
			}

			if len(result.Items) != want {
				t.Errorf("n=%d page=%d: len = %d, want %d", n, page, len(result.Items), want)
			}
			if result.Total != n {
				t.Errorf("n=%d page=%d: total = %d, want %d", n, page, result.Total, n)
			}
		}
	}
}

func TestPaginateEmptySet(t *testing.T) {
	result := Paginate([]string{}, Params{Page: 1, Limit: 5})

	if len(result.Items) != 0 || result.Total != 0 || result.Page != 1 {
		t.Errorf("empty set: got %+v", result)
	}
	if result.Items == nil {
		t.Error("Items should be an empty slice, not nil, so it serializes as []")
	}
}
