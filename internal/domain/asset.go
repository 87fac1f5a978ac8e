package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidArgument marks caller mistakes; handlers map it to 400.
var ErrInvalidArgument = errors.New("invalid argument")

// maxExactFloatFID is the largest integer a float64 literal carries exactly.
const maxExactFloatFID = 1 << 53

// fidError rejects a numeric fid that is not a positive integer.
type fidError struct {
	literal string
}

func (e *fidError) Error() string {
	return fmt.Sprintf("fid must be a positive integer, got %s", e.literal)
}

func (e *fidError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// FID is a Farcaster identifier. It decodes from a JSON string or number.
type FID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fid must be a string or number: %w", err)
	}
	fid, err := canonicalFID(n.String())
	if err != nil {
		return err
	}
	*f = fid
	return nil
}

// canonicalFID formats a JSON number as base-10, so 42.0 and 4.2e1 both become 42.
func canonicalFID(literal string) (FID, error) {
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		if u == 0 {
			return "", &fidError{literal: literal}
		}
		return FID(strconv.FormatUint(u, 10)), nil
	}

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || v < 1 || v > maxExactFloatFID || v != math.Trunc(v) {
		return "", &fidError{literal: literal}
	}
	return FID(strconv.FormatUint(uint64(v), 10)), nil
}

func (f FID) String() string {
	return string(f)
}

// AssetRecord is the per-request input to the pinning pipeline. It is never stored.
type AssetRecord struct {
	SubjectID      FID
	SourceImageURL string
	DisplayName    string
	Rarity         Rarity
	Mood           Mood
}

// PinnedAsset is the pipeline result. ImageURI and MetadataURI are canonical and
// immutable; the gateway URLs are advisory and may differ between calls.
type PinnedAsset struct {
	ImageCID           string `json:"imageCid"`
	MetadataCID        string `json:"metadataCid"`
	ImageURI           string `json:"imageIpfs"`
	MetadataURI        string `json:"metadataUrl"`
	ImageGatewayURL    string `json:"imageGateway"`
	MetadataGatewayURL string `json:"metadataGateway"`
	Rarity             Rarity `json:"rarity"`
	Mood               Mood   `json:"mood"`
}
