package sale

import (
	"fmt"
	"testing"

	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseAt(t *testing.T) {
	conf, err := NewSaleConfig(testParams())
	require.NoError(t, err)

	testcases := []struct {
		now      uint64
		expected entity.Phase
	}{
		{0, entity.PhasePreSale},
		{79, entity.PhasePreSale},
		{80, entity.PhaseTier1Open},
		{99, entity.PhaseTier1Open},
		{100, entity.PhaseTier2Open},
		{119, entity.PhaseTier2Open},
		{120, entity.PhasePublicOpen},
		{259, entity.PhasePublicOpen},
		{260, entity.PhaseClosed},
		{1000, entity.PhaseClosed},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprint(tc.now), func(t *testing.T) {
			assert.Equal(t, tc.expected, PhaseAt(conf, tc.now))
		})
	}
}

func TestHasAccess(t *testing.T) {
	conf, err := NewSaleConfig(testParams())
	require.NoError(t, err)

	type membership struct {
		name    string
		inTier1 bool
		inTier2 bool
	}
	var (
		tier1  = membership{"tier1", true, false}
		tier2  = membership{"tier2", false, true}
		both   = membership{"both", true, true}
		public = membership{"public", false, false}
	)

	testcases := []struct {
		now     uint64
		granted []membership
		denied  []membership
	}{
		{now: 79, denied: []membership{tier1, tier2, both, public}},
		{now: 80, granted: []membership{tier1, both}, denied: []membership{tier2, public}},
		{now: 100, granted: []membership{tier1, tier2, both}, denied: []membership{public}},
		{now: 120, granted: []membership{tier1, tier2, both, public}},
		{now: 259, granted: []membership{tier1, tier2, both, public}},
		{now: 260, denied: []membership{tier1, tier2, both, public}},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprint(tc.now), func(t *testing.T) {
			for _, m := range tc.granted {
				assert.True(t, HasAccess(conf, tc.now, m.inTier1, m.inTier2), "%s should have access", m.name)
			}
			for _, m := range tc.denied {
				assert.False(t, HasAccess(conf, tc.now, m.inTier1, m.inTier2), "%s should not have access", m.name)
			}
		})
	}
}
