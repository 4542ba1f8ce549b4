package satindex

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
)

// DecodeStrategy identifies which parse strategy produced a usable payload.
// The upstream source serves two pages with inconsistent framing and drifts
// on whitespace for the rest; the chain below is ordered best-effort and the
// winning strategy is logged so the chain can be validated against the live
// source.
type DecodeStrategy string

const (
	StrategyStrict           DecodeStrategy = "strict"
	StrategyWrapSplit        DecodeStrategy = "wrap_split"
	StrategyStripNewlineRuns DecodeStrategy = "strip_newline_runs"
	StrategyStripDoubleSpace DecodeStrategy = "strip_double_space"
)

// wrapSplitPages are served as concatenated JSON fragments due to a
// historical content-type mismatch at the source.
var wrapSplitPages = map[int]struct{}{
	2: {},
	3: {},
}

// rawPage is the decoded wire form of one index page: a delta-encoded sat
// sequence and the permutation mapping decoded position to bitmap offset.
type rawPage struct {
	deltas []int64
	perm   []int64
}

// parsePage parses the raw text of a page, applying the repair chain
// appropriate for that page index.
func parsePage(page int, raw string) (rawPage, DecodeStrategy, error) {
	if _, ok := wrapSplitPages[page]; ok {
		parsed, err := parseWrapSplit(raw)
		if err != nil {
			return rawPage{}, StrategyWrapSplit, errors.Wrapf(err, "page %d", page)
		}
		return parsed, StrategyWrapSplit, nil
	}

	attempts := []struct {
		strategy DecodeStrategy
		repair   func(string) string
	}{
		{StrategyStrict, func(s string) string { return s }},
		{StrategyStripNewlineRuns, func(s string) string { return strings.ReplaceAll(s, "\n  ", "") }},
		{StrategyStripDoubleSpace, func(s string) string {
			s = strings.ReplaceAll(s, "\n  ", "")
			return strings.ReplaceAll(s, "  ", "")
		}},
	}

	var lastErr error
	for _, attempt := range attempts {
		parsed, err := parseStrict(attempt.repair(raw))
		if err == nil {
			return parsed, attempt.strategy, nil
		}
		lastErr = err
	}
	return rawPage{}, "", errors.Wrapf(lastErr, "page %d: all parse strategies failed", page)
}

// parseStrict expects the canonical form: a two-element array holding the
// delta sequence and the permutation sequence.
func parseStrict(raw string) (rawPage, error) {
	var payload [][]int64
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return rawPage{}, errors.Wrap(err, "can't unmarshal page payload")
	}
	if len(payload) != 2 {
		return rawPage{}, errors.Errorf("expected 2 sequences, got %d", len(payload))
	}
	if len(payload[0]) != len(payload[1]) {
		return rawPage{}, errors.Errorf("delta/permutation length mismatch: %d != %d", len(payload[0]), len(payload[1]))
	}
	return rawPage{deltas: payload[0], perm: payload[1]}, nil
}

// parseWrapSplit repairs concatenated JSON fragments: wrap the fragments into
// a single array, flatten, then split the flat sequence into its delta and
// permutation halves.
func parseWrapSplit(raw string) (rawPage, error) {
	wrapped := "[" + strings.ReplaceAll(strings.TrimSpace(raw), "][", "],[") + "]"

	var fragments [][]int64
	if err := json.Unmarshal([]byte(wrapped), &fragments); err != nil {
		return rawPage{}, errors.Wrap(err, "can't unmarshal wrapped page payload")
	}

	var flat []int64
	for _, fragment := range fragments {
		flat = append(flat, fragment...)
	}
	if len(flat) == 0 || len(flat)%2 != 0 {
		return rawPage{}, errors.Errorf("can't split %d entries into delta/permutation halves", len(flat))
	}

	half := len(flat) / 2
	return rawPage{deltas: flat[:half], perm: flat[half:]}, nil
}

// decodePage reconstructs the dense sat array for a page: cumulative-sum the
// deltas into absolute sat numbers, then undo the storage-side reordering via
// the permutation. Unset positions hold 0, which is never a valid sat here.
func decodePage(parsed rawPage) ([]uint64, error) {
	if len(parsed.deltas) > constants.PageSize {
		return nil, errors.Errorf("page holds %d entries, exceeds page size %d", len(parsed.deltas), constants.PageSize)
	}

	sats := make([]uint64, constants.PageSize)
	var runningTotal int64
	for i, delta := range parsed.deltas {
		if i == 0 {
			runningTotal = delta
		} else {
			runningTotal += delta
		}
		if runningTotal <= 0 {
			return nil, errors.Errorf("non-positive sat %d at position %d", runningTotal, i)
		}

		offset := parsed.perm[i]
		if offset < 0 || offset >= int64(constants.PageSize) {
			return nil, errors.Errorf("permutation offset %d out of page bounds", offset)
		}
		sats[offset] = uint64(runningTotal)
	}
	return sats, nil
}
