package entity

import (
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
)

type ValidationStatus string

const (
	StatusValid   ValidationStatus = "valid"
	StatusInvalid ValidationStatus = "invalid"
	StatusPending ValidationStatus = "pending"
	StatusUnknown ValidationStatus = "unknown"
)

// ParcelClaim is one child inscription whose content parses as a valid parcel
// of its parent bitmap. At most one claim wins a given parcel number per
// validation run.
type ParcelClaim struct {
	Id           ordinals.InscriptionId `json:"id"`
	ParcelNumber int64                  `json:"parcelNumber"`
	Content      string                 `json:"content"`
	Height       uint64                 `json:"height"`
}

// ValidationDetails carries the evidence behind a verdict. AllChildren lists
// every enumerated child that could be fetched, winners and losers alike.
type ValidationDetails struct {
	BitmapNumber  int64                    `json:"bitmapNumber"`
	ParcelNumber  *int64                   `json:"parcelNumber,omitempty"`
	InscriptionId *ordinals.InscriptionId  `json:"inscriptionId,omitempty"`
	IsParcel      bool                     `json:"isParcel"`
	ValidParcels  []*ParcelClaim           `json:"validParcels"`
	AllChildren   []ordinals.InscriptionId `json:"allChildren"`
}

// ValidationResult is the verdict of one validation call. Constructed fresh
// per call and never mutated after construction.
type ValidationResult struct {
	Status  ValidationStatus   `json:"status"`
	Message string             `json:"message,omitempty"`
	Details *ValidationDetails `json:"details,omitempty"`
}

func (r *ValidationResult) IsValid() bool {
	return r != nil && r.Status == StatusValid
}
