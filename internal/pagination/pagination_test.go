package pagination

import (
	"net/url"
	"strings"
	"testing"

	"blogapi/internal/domain"
)

func TestNormalizeDefaults(t *testing.T) {
	req, err := Normalize(url.Values{}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Paginated {
		t.Fatalf("paginated should default to false")
	}
	if req.Page != 1 || req.Limit != 50 {
		t.Fatalf("defaults wrong: page=%d limit=%d", req.Page, req.Limit)
	}
}

func TestNormalizeCollectsBothFieldErrors(t *testing.T) {
	q := url.Values{"page": {"a"}, "limit": {"a"}}
	_, err := Normalize(q, nil)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	ve, ok := err.(domain.ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
	if !strings.Contains(ve.Errors[0], "page") || !strings.Contains(ve.Errors[0], "positive integer") {
		t.Fatalf("first error should reference page: %q", ve.Errors[0])
	}
	if !strings.Contains(ve.Errors[1], "limit") || !strings.Contains(ve.Errors[1], "positive integer") {
		t.Fatalf("second error should reference limit: %q", ve.Errors[1])
	}
}

func TestNormalizeRejectsNonPositiveValues(t *testing.T) {
	for _, raw := range []string{"0", "-1", "1.5"} {
		if _, err := Normalize(url.Values{"page": {raw}}, nil); err == nil {
			t.Fatalf("page=%q should be rejected", raw)
		}
	}
}

func TestNormalizePaginatedFlagStrict(t *testing.T) {
	if _, err := Normalize(url.Values{"paginated": {"yes"}}, nil); err == nil {
		t.Fatalf("paginated=yes should be rejected")
	}
	req, err := Normalize(url.Values{"paginated": {"true"}}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !req.Paginated {
		t.Fatalf("paginated=true should set the flag")
	}
}

func TestNormalizeStatusSet(t *testing.T) {
	allowed := []string{"ACTIVE", "INACTIVE", "FLAGGED"}
	q := url.Values{"status": {"ACTIVE", "INACTIVE", "ACTIVE"}}
	req, err := Normalize(q, allowed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(req.Statuses) != 2 || req.Statuses[0] != "ACTIVE" || req.Statuses[1] != "INACTIVE" {
		t.Fatalf("statuses not normalized to a set: %v", req.Statuses)
	}

	if _, err := Normalize(url.Values{"status": {"BOGUS"}}, allowed); err == nil {
		t.Fatalf("unknown status should be rejected")
	}
}

func TestNormalizeStatusUnsupportedResource(t *testing.T) {
	if _, err := Normalize(url.Values{"status": {"ACTIVE"}}, nil); err == nil {
		t.Fatalf("status on a resource without statuses should be rejected")
	}
}

func TestWindow(t *testing.T) {
	for _, limit := range []int{1, 10, 50, 200} {
		skip, take := (Request{Page: 1, Limit: limit}).Window()
		if skip != 0 || take != limit {
			t.Fatalf("page 1 limit %d: got skip=%d take=%d", limit, skip, take)
		}
	}
	skip, take := (Request{Page: 3, Limit: 10}).Window()
	if skip != 20 || take != 10 {
		t.Fatalf("page 3 limit 10: got skip=%d take=%d", skip, take)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{0, 10, 0},
		{20, 10, 2},
		{21, 10, 3},
		{5, 50, 1},
		{1, 1, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestFlatListResultsMatchesData(t *testing.T) {
	env := FlatList([]string{"a", "b", "c"})
	if env.Results != 3 {
		t.Fatalf("results should equal data length, got %d", env.Results)
	}
	if env.Status != "success" {
		t.Fatalf("status = %q", env.Status)
	}

	empty := FlatList([]string{})
	if empty.Results != 0 {
		t.Fatalf("empty list results = %d", empty.Results)
	}
}

func TestPagedEchoesNormalizedRequest(t *testing.T) {
	req := Request{Paginated: true, Page: 2, Limit: 10}
	env := Paged([]int{1, 2}, req, 21)
	if env.CurrentPage != 2 || env.Limit != 10 {
		t.Fatalf("envelope should echo request values: page=%d limit=%d", env.CurrentPage, env.Limit)
	}
	if env.TotalItems != 21 || env.TotalPages != 3 {
		t.Fatalf("totals wrong: items=%d pages=%d", env.TotalItems, env.TotalPages)
	}
}
