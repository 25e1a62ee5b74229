package assets

import (
	"errors"
	"strconv"
	"strings"
)

// ErrRangeNotSatisfiable flags a malformed or unsupported Range header. It
// is raised before any storage call is made.
var ErrRangeNotSatisfiable = errors.New("range not satisfiable")

// ContentRange is a parsed single-range Range header. End is -1 and Count 0
// when the range is open-ended (bytes=a-).
type ContentRange struct {
	Start int64
	End   int64
	Count int64
}

// ParseRange parses a Range header of the forms "bytes=a-b" and "bytes=a-".
// An empty header returns (nil, nil), meaning a full-content response.
// Suffix ranges (bytes=-n) and multi-range requests are rejected.
func ParseRange(header string) (*ContentRange, error) {
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return nil, ErrRangeNotSatisfiable
	}

	startRaw, endRaw, ok := strings.Cut(spec, "-")
	if !ok || strings.TrimSpace(startRaw) == "" {
		return nil, ErrRangeNotSatisfiable
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startRaw), 10, 64)
	if err != nil || start < 0 {
		return nil, ErrRangeNotSatisfiable
	}

	endRaw = strings.TrimSpace(endRaw)
	if endRaw == "" {
		return &ContentRange{Start: start, End: -1}, nil
	}

	end, err := strconv.ParseInt(endRaw, 10, 64)
	if err != nil || end < start {
		return nil, ErrRangeNotSatisfiable
	}
	return &ContentRange{Start: start, End: end, Count: end - start + 1}, nil
}
