package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"zero values", PageRequest{}, PageRequest{Page: 1, Size: 100}},
		{"negative", PageRequest{Page: -2, Size: -5}, PageRequest{Page: 1, Size: 100}},
		{"kept", PageRequest{Page: 3, Size: 20}, PageRequest{Page: 3, Size: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{}.Offset())
	assert.Equal(t, 0, PageRequest{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Size: 20}.Offset())
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name      string
		data      []int
		total     int
		req       PageRequest
		wantSize  int
		wantPages int
	}{
		{"empty", nil, 0, PageRequest{Page: 1, Size: 10}, 0, 1},
		{"partial page", []int{1, 2, 3}, 3, PageRequest{Page: 1, Size: 10}, 3, 1},
		{"full page", []int{1, 2}, 5, PageRequest{Page: 1, Size: 2}, 2, 3},
		{"last page", []int{5}, 5, PageRequest{Page: 3, Size: 2}, 1, 3},
		{"exact multiple", []int{1, 2}, 4, PageRequest{Page: 2, Size: 2}, 2, 2},
		{"defaults", []int{1}, 1, PageRequest{}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated(tt.data, tt.total, tt.req)

			assert.Equal(t, tt.wantSize, p.Size)
			assert.Equal(t, tt.wantPages, p.Pages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.req.Normalize().Page, p.Page)
			assert.NotNil(t, p.Data)
		})
	}
}
