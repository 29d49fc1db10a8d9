package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
	"github.com/bradfox2/aa-hotel-optimizer/internal/optimizer"
)

func validRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		Locations:    []string{"Phoenix"},
		StartDate:    date(t, "06/01/2025"),
		EndDate:      date(t, "06/05/2025"),
		TargetPoints: 125000,
		Strategy:     optimizer.PPD,
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Request) {},
		},
		{
			name:    "no locations",
			mutate:  func(r *Request) { r.Locations = nil },
			wantErr: common.ErrNoLocations,
		},
		{
			name:    "inverted dates",
			mutate:  func(r *Request) { r.StartDate, r.EndDate = r.EndDate, r.StartDate },
			wantErr: common.ErrInvalidDateRange,
		},
		{
			name:    "negative target",
			mutate:  func(r *Request) { r.TargetPoints = -1 },
			wantErr: common.ErrNegativeTarget,
		},
		{
			name:    "negative balance",
			mutate:  func(r *Request) { r.CurrentBalance = -1 },
			wantErr: common.ErrNegativeBalance,
		},
		{
			name:    "unknown strategy",
			mutate:  func(r *Request) { r.Strategy = "optimal" },
			wantErr: common.ErrUnknownStrategy,
		},
		{
			name: "fastest without overlap cap",
			mutate: func(r *Request) {
				r.Strategy = optimizer.FastestTime
				r.MaxOverlaps = 0
			},
			wantErr: common.ErrInvalidMaxOverlaps,
		},
		{
			name: "bad card miles rate",
			mutate: func(r *Request) {
				r.CardBonusEnabled = true
				r.CardMilesRate = 5
			},
			wantErr: common.ErrInvalidMilesRate,
		},
		{
			name: "card miles rate of one",
			mutate: func(r *Request) {
				r.CardBonusEnabled = true
				r.CardMilesRate = 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
