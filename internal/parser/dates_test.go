// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	currentYearDefault := fmt.Sprintf("%d-01-01", time.Now().Year())

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"full date", "20230615", "2023-06-15"},
		{"year and month", "202306", "2023-06-01"},
		{"year only", "2023", "2023-01-01"},
		{"punctuated date", "2023-06-15", "2023-06-15"},
		{"extra digits ignored", "20230615123059", "2023-06-15"},
		{"garbage", "garbage", currentYearDefault},
		{"empty", "", currentYearDefault},
		{"too few digits", "202", currentYearDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestDefaultDate(t *testing.T) {
	assert.Equal(t, fmt.Sprintf("%d-01-01", time.Now().Year()), DefaultDate())
}
