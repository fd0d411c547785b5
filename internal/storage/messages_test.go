package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connectly/backend/internal/storage"
)

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"zero falls back to default", 0, storage.DefaultHistoryLimit},
		{"negative falls back to default", -10, storage.DefaultHistoryLimit},
		{"within range is kept", 25, 25},
		{"exactly max is kept", storage.MaxHistoryLimit, storage.MaxHistoryLimit},
		{"above max is clamped", 500, storage.MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, storage.NormalizeLimit(tt.limit))
		})
	}
}
