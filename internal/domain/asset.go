package domain

import "time"

// AssetKind distinguishes uploaded originals from generated creatives.
type AssetKind string

const (
	AssetKindOriginal  AssetKind = "ORIGINAL"
	AssetKindGenerated AssetKind = "GENERATED"
)

// Asset is a stored media file: either a user upload or a generated creative.
// Immutable once written.
type Asset struct {
	ID         string
	UserID     string
	JobID      string
	Kind       AssetKind
	StorageKey string
	MIME       string
	Bytes      int64
	Width      int
	Height     int
	CreatedAt  time.Time
}
