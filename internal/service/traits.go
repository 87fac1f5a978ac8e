package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/timmy/fidghost/internal/domain"
)

// RandomSource is the randomness the trait sampler draws from. *rand.Rand
// satisfies it; tests pass a fixed sequence.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// lockedRandom serializes access to a *rand.Rand shared by concurrent requests.
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRandom returns a goroutine-safe RandomSource. A zero seed uses the clock.
func NewLockedRandom(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandom{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Cumulative rarity thresholds; a roll strictly below a bound gets that tier.
const (
	mythicBelow    = 0.005
	legendaryBelow = 0.025
	epicBelow      = 0.075
	rareBelow      = 0.175
)

// RarityForRoll maps a uniform roll in [0,1) to a tier.
func RarityForRoll(r float64) domain.Rarity {
	switch {
	case r < mythicBelow:
		return domain.RarityMythic
	case r < legendaryBelow:
		return domain.RarityLegendary
	case r < epicBelow:
		return domain.RarityEpic
	case r < rareBelow:
		return domain.RarityRare
	default:
		return domain.RarityCommon
	}
}

// TraitSampler assigns rarity and mood to ghosts the caller left unspecified.
type TraitSampler struct {
	rnd RandomSource
}

// NewTraitSampler creates a sampler; nil rnd falls back to a clock-seeded source.
func NewTraitSampler(rnd RandomSource) *TraitSampler {
	if rnd == nil {
		rnd = NewLockedRandom(0)
	}
	return &TraitSampler{rnd: rnd}
}

// Rarity draws one tier.
func (s *TraitSampler) Rarity() domain.Rarity {
	return RarityForRoll(s.rnd.Float64())
}

// Mood draws one mood uniformly.
func (s *TraitSampler) Mood() domain.Mood {
	return domain.Moods[s.rnd.Intn(len(domain.Moods))]
}

// Assign keeps caller-supplied traits and samples the missing ones independently.
func (s *TraitSampler) Assign(rarity domain.Rarity, mood domain.Mood) (domain.Rarity, domain.Mood) {
	if rarity == "" {
		rarity = s.Rarity()
	}
	if mood == "" {
		mood = s.Mood()
	}
	return rarity, mood
}
