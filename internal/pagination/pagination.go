// Package pagination normalizes list-endpoint query parameters into an
// offset/limit window plus optional multi-value status filters, and
// shapes list responses consistently across every list route.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"blogapi/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Request is a normalized pagination request. Invariants: Page >= 1,
// Limit >= 1, Statuses deduplicated in first-seen order.
type Request struct {
	Paginated bool
	Page      int
	Limit     int
	Statuses  []string
}

// Normalize validates the raw query against the contract. Field errors
// are collected, not short-circuited, in declaration order: paginated,
// page, limit, status.
func Normalize(query url.Values, allowedStatuses []string) (Request, error) {
	req := Request{Page: DefaultPage, Limit: DefaultLimit}
	var errs []string

	switch raw := query.Get("paginated"); raw {
	case "", "false":
	case "true":
		req.Paginated = true
	default:
		errs = append(errs, `paginated must be "true" or "false"`)
	}

	if raw := query.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			req.Page = n
		} else {
			errs = append(errs, "page must be a positive integer")
		}
	}

	if raw := query.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			req.Limit = n
		} else {
			errs = append(errs, "limit must be a positive integer")
		}
	}

	if values, ok := query["status"]; ok {
		if len(allowedStatuses) == 0 {
			errs = append(errs, "status is not a supported filter for this resource")
			values = nil
		}
		allowed := make(map[string]struct{}, len(allowedStatuses))
		for _, s := range allowedStatuses {
			allowed[s] = struct{}{}
		}
		seen := map[string]struct{}{}
		for _, v := range values {
			if _, ok := allowed[v]; !ok {
				errs = append(errs, fmt.Sprintf("status must be one of %v", allowedStatuses))
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			req.Statuses = append(req.Statuses, v)
		}
	}

	if len(errs) > 0 {
		return Request{}, domain.ValidationError{Errors: errs}
	}
	return req, nil
}

// Window converts the request into the offset/limit pair handed to the
// data-fetch collaborator. Page 1 always yields skip 0.
func (r Request) Window() (skip, take int) {
	return (r.Page - 1) * r.Limit, r.Limit
}

// Envelope is the paginated list response shape.
type Envelope struct {
	Status      string `json:"status"`
	TotalItems  int    `json:"totalItems"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Limit       int    `json:"limit"`
	Data        any    `json:"data"`
}

// Flat is the non-paginated list response shape. Results always equals
// the length of Data.
type Flat struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    any    `json:"data"`
}

// Paged wraps data in the paginated envelope. TotalPages is
// ceil(totalItems/limit); zero items means zero pages.
func Paged(data any, req Request, totalItems int) Envelope {
	return Envelope{
		Status:      "success",
		TotalItems:  totalItems,
		TotalPages:  TotalPages(totalItems, req.Limit),
		CurrentPage: req.Page,
		Limit:       req.Limit,
		Data:        data,
	}
}

// FlatList wraps data in the flat envelope with results bound to the
// actual slice length.
func FlatList[T any](data []T) Flat {
	return Flat{Status: "success", Results: len(data), Data: data}
}

func TotalPages(totalItems, limit int) int {
	if totalItems <= 0 || limit <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
