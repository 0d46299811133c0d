// Package adapt holds the small set of helpers every venue's adapter
// family shares: order-book sorting, percent rounding, and USDT-suffix
// filtering.
package adapt

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"marketfeed/errs"
	"marketfeed/types"
)

// ParseFloat parses a wire string into a float64, returning an
// AdaptFailure tagged with venue on failure.
func ParseFloat(venue, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.Wrap(errs.AdaptFailure, venue, "failed to parse field "+field+": "+raw, err)
	}
	return v, nil
}

// RoundPercent rounds a percent value to two decimal places, the
// convention used for TickerDaily.P.
func RoundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsUsdtSymbol reports whether symbol ends in one of the USDT spellings
// venues use: plain suffix, or hyphen/underscore-delimited.
func IsUsdtSymbol(symbol string) bool {
	upper := strings.ToUpper(symbol)
	return strings.HasSuffix(upper, "USDT") ||
		strings.HasSuffix(upper, "-USDT") ||
		strings.HasSuffix(upper, "_USDT") ||
		strings.HasSuffix(upper, "-USDT-SWAP")
}

// SortDepth sorts asks ascending and bids descending by price, the
// invariant types.Depth requires regardless of the venue's wire order.
func SortDepth(d *types.Depth) {
	sort.Slice(d.Asks, func(i, j int) bool { return d.Asks[i].Price < d.Asks[j].Price })
	sort.Slice(d.Bids, func(i, j int) bool { return d.Bids[i].Price > d.Bids[j].Price })
}

// ParseLevels converts a venue's raw [[priceStr, sizeStr], ...] rows into
// PriceLevel values, tagging failures with venue and side for easier
// debugging.
func ParseLevels(venue, side string, rows [][2]string) ([]types.PriceLevel, error) {
	levels := make([]types.PriceLevel, 0, len(rows))
	for _, row := range rows {
		price, err := ParseFloat(venue, side+".price", row[0])
		if err != nil {
			return nil, err
		}
		size, err := ParseFloat(venue, side+".size", row[1])
		if err != nil {
			return nil, err
		}
		levels = append(levels, types.PriceLevel{Price: price, Size: size})
	}
	return levels, nil
}
