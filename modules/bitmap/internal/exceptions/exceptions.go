package exceptions

// satIndexOverrides lists bitmap numbers whose canonical inscription is not
// the first inscription on their sat, with the ordinal index of the
// inscription that is actually recognized. Curated by hand from known
// conflicting or duplicate submissions later superseded.
var satIndexOverrides = map[int64]int64{
	92871:  1,
	834051: 17,
}

// GetSatIndex returns the ordinal index of the canonical inscription on the
// sat carrying the given bitmap number. 0 for every number without a curated
// override.
func GetSatIndex(bitmapNumber int64) int64 {
	return satIndexOverrides[bitmapNumber]
}
