package constants

const Version = "v0.1.0"

const (
	// MaxBitmapNumber is the highest bitmap number covered by the sat index.
	// The index is historical and append-only; numbers above this are not
	// resolvable until a new index inscription is published.
	MaxBitmapNumber = 839999

	// PageSize is the number of sat entries per index page.
	PageSize = 100000

	// PageCount covers the full domain [0, MaxBitmapNumber].
	PageCount = (MaxBitmapNumber + PageSize) / PageSize

	// ContentSuffix is the literal suffix of every bitmap/parcel inscription.
	ContentSuffix = ".bitmap"
)
