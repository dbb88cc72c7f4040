package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSeed(t *testing.T) {
	tests := []struct {
		name   string
		record ActivityRecord
		want   bool
	}{
		{"regular record", ActivityRecord{ID: "r1", UserID: "user-1"}, false},
		{"seed record ID", ActivityRecord{ID: SeedRecordPrefix + "1", UserID: "user-1"}, true},
		{"seed user ID", ActivityRecord{ID: "r1", UserID: SeedUserPrefix + "1"}, true},
		{"empty record", ActivityRecord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.IsSeed())
		})
	}
}

func TestRegionLabel(t *testing.T) {
	tests := []struct {
		name   string
		record ActivityRecord
		want   string
	}{
		{"explicit region wins", ActivityRecord{Region: "부산", Location: "서울 남산타워"}, "부산"},
		{"first token of location", ActivityRecord{Location: "서울 남산타워"}, "서울"},
		{"single token location", ActivityRecord{Location: "제주"}, "제주"},
		{"no labels", ActivityRecord{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.RegionLabel())
		})
	}
}
