package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name             string
		rawURL           string
		page             int
		pageSize         int
		total            int
		expectedNext     string
		expectedPrevious string
	}{
		{
			name:         "first page with more results",
			rawURL:       "/api/v1/courses/",
			page:         1,
			pageSize:     10,
			total:        25,
			expectedNext: "/api/v1/courses/?page=2",
		},
		{
			name:             "middle page",
			rawURL:           "/api/v1/courses/?page=2",
			page:             2,
			pageSize:         10,
			total:            25,
			expectedNext:     "/api/v1/courses/?page=3",
			expectedPrevious: "/api/v1/courses/?page=1",
		},
		{
			name:             "last page",
			rawURL:           "/api/v1/courses/?page=3",
			page:             3,
			pageSize:         10,
			total:            25,
			expectedPrevious: "/api/v1/courses/?page=2",
		},
		{
			name:         "filter parameters survive page navigation",
			rawURL:       "/api/v1/payments/?method=transfer&course_id=7",
			page:         1,
			pageSize:     10,
			total:        25,
			expectedNext: "/api/v1/payments/?course_id=7&method=transfer&page=2",
		},
		{
			name:             "filter parameters survive on both links",
			rawURL:           "/api/v1/payments/?method=cash&page=2",
			page:             2,
			pageSize:         10,
			total:            25,
			expectedNext:     "/api/v1/payments/?method=cash&page=3",
			expectedPrevious: "/api/v1/payments/?method=cash&page=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqURL, err := url.Parse(tt.rawURL)
			require.NoError(t, err)

			resp := NewPaginatedResponse(reqURL, tt.page, tt.pageSize, tt.total, []int{1, 2, 3})

			assert.Equal(t, tt.total, resp.Count)

			if tt.expectedNext == "" {
				assert.Nil(t, resp.Next)
			} else {
				require.NotNil(t, resp.Next)
				assert.Equal(t, tt.expectedNext, *resp.Next)
			}

			if tt.expectedPrevious == "" {
				assert.Nil(t, resp.Previous)
			} else {
				require.NotNil(t, resp.Previous)
				assert.Equal(t, tt.expectedPrevious, *resp.Previous)
			}
		})
	}
}

func TestNewPaginatedResponse_NilResults(t *testing.T) {
	reqURL, err := url.Parse("/api/v1/courses/")
	require.NoError(t, err)

	resp := NewPaginatedResponse[int](reqURL, 1, 10, 0, nil)

	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}
