package constants

import "testing"

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int
		wantLimit int
	}{
		{name: "empty values use defaults", pageStr: "", limitStr: "", wantPage: 1, wantLimit: 10},
		{name: "valid values parsed", pageStr: "3", limitStr: "25", wantPage: 3, wantLimit: 25},
		{name: "limit clamped to maximum", pageStr: "1", limitStr: "250", wantPage: 1, wantLimit: 100},
		{name: "zero page falls back", pageStr: "0", limitStr: "10", wantPage: 1, wantLimit: 10},
		{name: "negative values fall back", pageStr: "-2", limitStr: "-5", wantPage: 1, wantLimit: 10},
		{name: "malformed values fall back", pageStr: "abc", limitStr: "ten", wantPage: 1, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParsePaginationParams(tt.pageStr, tt.limitStr)
			if params.Page != tt.wantPage {
				t.Errorf("Expected page %d, got %d", tt.wantPage, params.Page)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, params.Limit)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		expect int
	}{
		{page: 1, limit: 10, expect: 0},
		{page: 2, limit: 10, expect: 10},
		{page: 5, limit: 25, expect: 100},
	}

	for _, tt := range tests {
		params := PaginationParams{Page: tt.page, Limit: tt.limit}
		if got := params.Offset(); got != tt.expect {
			t.Errorf("Expected offset %d for page %d limit %d, got %d", tt.expect, tt.page, tt.limit, got)
		}
	}
}
