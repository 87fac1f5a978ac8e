package domain

import "strings"

// Rarity is the closed set of ghost rarity tiers.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// Rarities lists every tier from most to least common.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

// ParseRarity matches s against the tier names, ignoring case and surrounding space.
func ParseRarity(s string) (Rarity, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Rarities {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Mood is the closed set of ghost moods.
type Mood string

const (
	MoodCalm    Mood = "Calm"
	MoodHappy   Mood = "Happy"
	MoodNeutral Mood = "Neutral"
	MoodSerious Mood = "Serious"
	MoodPlayful Mood = "Playful"
)

// Moods is ordered; uniform sampling indexes into it.
var Moods = []Mood{MoodCalm, MoodHappy, MoodNeutral, MoodSerious, MoodPlayful}

// ParseMood matches s against the mood names, ignoring case and surrounding space.
func ParseMood(s string) (Mood, bool) {
	s = strings.TrimSpace(s)
	for _, m := range Moods {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}
