package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/timmy/fidghost/internal/domain"
)

func TestRarityForRoll(t *testing.T) {
	testCases := []struct {
		roll float64
		want domain.Rarity
	}{
		{0, domain.RarityMythic},
		{0.004999, domain.RarityMythic},
		{0.005, domain.RarityLegendary},
		{0.024999, domain.RarityLegendary},
		{0.025, domain.RarityEpic},
		{0.074999, domain.RarityEpic},
		{0.075, domain.RarityRare},
		{0.174999, domain.RarityRare},
		{0.175, domain.RarityCommon},
		{0.999999, domain.RarityCommon},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, RarityForRoll(tc.roll), "roll %v", tc.roll)
	}
}

func TestTraitSamplerAssignKeepsCallerValues(t *testing.T) {
	s := NewTraitSampler(fixedRandom{roll: 0.001, idx: 4})

	r, m := s.Assign(domain.RarityRare, domain.MoodCalm)
	assert.Equal(t, domain.RarityRare, r)
	assert.Equal(t, domain.MoodCalm, m)

	r, m = s.Assign("", "")
	assert.Equal(t, domain.RarityMythic, r)
	assert.Equal(t, domain.MoodPlayful, m)

	// Only the missing trait is drawn
	r, m = s.Assign(domain.RarityEpic, "")
	assert.Equal(t, domain.RarityEpic, r)
	assert.Equal(t, domain.MoodPlayful, m)
}

func TestTraitSamplerDistribution(t *testing.T) {
	const n = 200000
	s := NewTraitSampler(NewLockedRandom(7))

	rarities := map[domain.Rarity]int{}
	moods := map[domain.Mood]int{}
	for i := 0; i < n; i++ {
		rarities[s.Rarity()]++
		moods[s.Mood()]++
	}

	want := map[domain.Rarity]float64{
		domain.RarityMythic:    0.005,
		domain.RarityLegendary: 0.02,
		domain.RarityEpic:      0.05,
		domain.RarityRare:      0.10,
		domain.RarityCommon:    0.825,
	}
	for r, p := range want {
		got := float64(rarities[r]) / n
		assert.LessOrEqual(t, math.Abs(got-p), 0.005, "rarity %s: got %.4f want %.4f", r, got, p)
	}

	for _, m := range domain.Moods {
		got := float64(moods[m]) / n
		assert.LessOrEqual(t, math.Abs(got-0.2), 0.01, "mood %s: got %.4f", m, got)
	}
}
