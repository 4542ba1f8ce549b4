package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
)

// contentPattern is the full bitmap/parcel content grammar: `N.bitmap` claims
// a district, `P.N.bitmap` claims a parcel of district N.
var contentPattern = regexp.MustCompile(`^(\d+)(\.\d+)?\.bitmap$`)

// ContentClaim is the parsed form of inscription content matching the
// grammar. ParcelNumber is nil for district claims.
type ContentClaim struct {
	BitmapNumber int64
	ParcelNumber *int64
}

func (c ContentClaim) IsParcel() bool {
	return c.ParcelNumber != nil
}

// ParseContent parses inscription content against the grammar. No network
// calls; malformed content fails with errs.BadFormat.
func ParseContent(content string) (ContentClaim, error) {
	matches := contentPattern.FindStringSubmatch(content)
	if matches == nil {
		return ContentClaim{}, errors.Wrapf(errs.BadFormat, "content %q", content)
	}

	first, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return ContentClaim{}, errors.Wrapf(errs.BadFormat, "content %q: number too large", content)
	}

	if matches[2] == "" {
		return ContentClaim{BitmapNumber: first}, nil
	}

	second, err := strconv.ParseInt(matches[2][1:], 10, 64)
	if err != nil {
		return ContentClaim{}, errors.Wrapf(errs.BadFormat, "content %q: number too large", content)
	}
	return ContentClaim{BitmapNumber: second, ParcelNumber: &first}, nil
}

// parseParcelChild parses a child inscription's content as a parcel of the
// given parent bitmap. The block part must textually equal the parent number
// and the parcel number must be a non-negative integer below the parent's
// transaction count, when known. Parent 0 predates the transaction-count
// rule and has no upper bound.
func parseParcelChild(content string, parentNumber int64, transactionCount *uint64) (int64, bool) {
	if !strings.HasSuffix(content, constants.ContentSuffix) {
		return 0, false
	}

	parts := strings.Split(strings.TrimSuffix(content, constants.ContentSuffix), ".")
	if len(parts) != 2 {
		return 0, false
	}
	if parts[1] != strconv.FormatInt(parentNumber, 10) {
		return 0, false
	}

	parcelNumber, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || parcelNumber < 0 {
		return 0, false
	}
	if parts[0] != strconv.FormatInt(parcelNumber, 10) {
		// reject leading zeros and other non-canonical renderings
		return 0, false
	}

	if parentNumber != 0 && transactionCount != nil && parcelNumber >= int64(*transactionCount) {
		return 0, false
	}
	return parcelNumber, true
}
