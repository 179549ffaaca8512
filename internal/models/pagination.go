package models

import (
	"net/url"
	"strconv"
)

// PaginatedResponse is the page envelope used by list endpoints
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginatedResponse builds the envelope for the given page.
//
// reqURL is the request URL used to build next/previous links; its query
// parameters are kept so filters survive page navigation. total is the
// number of rows matching the query across all pages.
func NewPaginatedResponse[T any](reqURL *url.URL, page, pageSize, total int, results []T) PaginatedResponse[T] {
	resp := PaginatedResponse[T]{
		Count:   total,
		Results: results,
	}
	if results == nil {
		resp.Results = []T{}
	}

	if page*pageSize < total {
		next := pageLink(reqURL, page+1)
		resp.Next = &next
	}
	if page > 1 {
		previous := pageLink(reqURL, page-1)
		resp.Previous = &previous
	}

	return resp
}

// pageLink rebuilds the request URL with the page parameter replaced
func pageLink(reqURL *url.URL, page int) string {
	query := reqURL.Query()
	query.Set("page", strconv.Itoa(page))
	return reqURL.Path + "?" + query.Encode()
}
