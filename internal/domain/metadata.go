package domain

import (
	"fmt"
	"strings"
)

// GhostStyle is the constant Style trait of every ghost.
const GhostStyle = "Ghost"

// Attribute is one entry of the metadata attributes list.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata is the NFT metadata document pinned next to the image.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// NewGhostMetadata builds the metadata for a ghost. Attribute order is fixed:
// FID, Style, Rarity, Mood.
func NewGhostMetadata(fid FID, imageURI string, rarity Rarity, mood Mood) *Metadata {
	return &Metadata{
		Name:        fmt.Sprintf("Fid Ghost #%s", fid),
		Description: fmt.Sprintf("Fid Ghost for Farcaster %s", fid),
		Image:       imageURI,
		Attributes: []Attribute{
			{TraitType: "FID", Value: string(fid)},
			{TraitType: "Style", Value: GhostStyle},
			{TraitType: "Rarity", Value: string(rarity)},
			{TraitType: "Mood", Value: string(mood)},
		},
	}
}

// Trait returns the value of the named attribute, or "" if absent.
func (m *Metadata) Trait(traitType string) string {
	for _, a := range m.Attributes {
		if a.TraitType == traitType {
			return a.Value
		}
	}
	return ""
}

// ImageFilename is the name the image is uploaded under.
func ImageFilename(fid FID, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("ghost-%s.%s", fid, ext)
}

// MetadataFilename is the name the metadata document is uploaded under.
func MetadataFilename(fid FID) string {
	return fmt.Sprintf("metadata-%s.json", fid)
}

// ContentURI builds the canonical scheme://cid/filename locator.
func ContentURI(scheme, cid, filename string) string {
	return fmt.Sprintf("%s://%s/%s", scheme, cid, filename)
}
