package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testPriceA = 450000
	testPriceB = 800000
)

func TestFromAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   int
		wantTier string
		wantErr  bool
	}{
		{
			name:     "price point A",
			amount:   testPriceA,
			wantTier: NovaA,
		},
		{
			name:     "price point B",
			amount:   testPriceB,
			wantTier: NovaB,
		},
		{
			name:    "unknown amount",
			amount:  123456,
			wantErr: true,
		},
		{
			name:    "zero amount",
			amount:  0,
			wantErr: true,
		},
		{
			name:    "off by one",
			amount:  testPriceA + 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAmount(tt.amount, testPriceA, testPriceB)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnrecognizedAmount)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTier, got)
		})
	}
}

func TestVisibleCount(t *testing.T) {
	tests := []struct {
		name  string
		tier  string
		total int
		want  int
	}{
		{
			name:  "NOVA B sees everything",
			tier:  NovaB,
			total: 10,
			want:  10,
		},
		{
			name:  "NOVA A sees half",
			tier:  NovaA,
			total: 10,
			want:  5,
		},
		{
			name:  "NOVA A rounds half up",
			tier:  NovaA,
			total: 7,
			want:  4,
		},
		{
			name:  "NOVA A single item",
			tier:  NovaA,
			total: 1,
			want:  1,
		},
		{
			name:  "no subscription sees nothing",
			tier:  "",
			total: 10,
			want:  0,
		},
		{
			name:  "unknown tier sees nothing",
			tier:  "NOVA C",
			total: 10,
			want:  0,
		},
		{
			name:  "empty list",
			tier:  NovaB,
			total: 0,
			want:  0,
		},
		{
			name:  "negative count is clamped",
			tier:  NovaB,
			total: -3,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleCount(tt.tier, tt.total))
		})
	}
}
