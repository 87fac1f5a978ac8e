package domain

import "time"

// PinRecord is the ledger row written after a successful pin. Only canonical
// content URIs are kept; gateway URLs are recomputed on demand.
type PinRecord struct {
	ID             string    `gorm:"type:text;primaryKey" json:"id"`
	FID            string    `gorm:"type:text;not null;index:idx_pins_fid" json:"fid"`
	DisplayName    string    `gorm:"type:text" json:"display_name,omitempty"`
	SourceImageURL string    `gorm:"type:text" json:"source_image_url"`
	ImageCID       string    `gorm:"type:text;not null" json:"image_cid"`
	MetadataCID    string    `gorm:"type:text;not null;index:idx_pins_metadata_cid" json:"metadata_cid"`
	ImageURI       string    `gorm:"type:text;not null" json:"image_uri"`
	MetadataURI    string    `gorm:"type:text;not null" json:"metadata_uri"`
	Rarity         Rarity    `gorm:"type:text" json:"rarity"`
	Mood           Mood      `gorm:"type:text" json:"mood"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for PinRecord.
func (PinRecord) TableName() string {
	return "pins"
}
