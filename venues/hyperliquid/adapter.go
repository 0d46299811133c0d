package hyperliquid

import (
	"encoding/json"
	"strconv"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "hyperliquid"

// wsEnvelope wraps every Hyperliquid push.
type wsEnvelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// candleData mirrors a candle push's data object, grounded on
// market/hyperliquid.go's HyperliquidCandle.
type candleData struct {
	T int64  `json:"t"`
	S string `json:"s"` // coin name, emitted as the Kline symbol as-is
	I string `json:"i"`
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
	V string `json:"v"`
}

// KlineMessage decodes a candle push.
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle envelope", err)
	}
	var d candleData
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle data", err)
	}
	o, err := adapt.ParseFloat(venueName, "o", d.O)
	if err != nil {
		return nil, err
	}
	h, err := adapt.ParseFloat(venueName, "h", d.H)
	if err != nil {
		return nil, err
	}
	l, err := adapt.ParseFloat(venueName, "l", d.L)
	if err != nil {
		return nil, err
	}
	c, err := adapt.ParseFloat(venueName, "c", d.C)
	if err != nil {
		return nil, err
	}
	v, err := adapt.ParseFloat(venueName, "v", d.V)
	if err != nil {
		return nil, err
	}
	return []types.Kline{{S: d.S, T: d.T, O: o, H: h, L: l, C: c, V: v, I: types.Timeframe(d.I), Closed: true}}, nil
}

// tradeData mirrors a trades push's data array element.
type tradeData struct {
	Coin string `json:"coin"`
	Side string `json:"side"` // "B" or "A"
	Px   string `json:"px"`
	Sz   string `json:"sz"`
	Time int64  `json:"time"`
}

// AggtradesMessage decodes a trades push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trades envelope", err)
	}
	var rows []tradeData
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade rows", err)
	}
	out := make([]types.AggTrade, 0, len(rows))
	for _, t := range rows {
		px, err := adapt.ParseFloat(venueName, "px", t.Px)
		if err != nil {
			return nil, err
		}
		sz, err := adapt.ParseFloat(venueName, "sz", t.Sz)
		if err != nil {
			return nil, err
		}
		side := types.Buy
		if t.Side == "A" {
			side = types.Sell
		}
		out = append(out, types.AggTrade{T: t.Time, S: t.Coin, Side: side, P: px, V: sz})
	}
	return out, nil
}

// metaAndAssetCtxs is the REST response shape for
// POST /info {"type":"metaAndAssetCtxs"}: a 2-element positional array.
// See the positional-zip fragility note above adaptHyperliquidPairs.
type universeAsset struct {
	Name string `json:"name"`
}

type assetCtx struct {
	MarkPx       string `json:"markPx"`
	OpenInterest string `json:"openInterest"`
	PrevDayPx    string `json:"prevDayPx"`
	DayNtlVlm    string `json:"dayNtlVlm"`
}

type metaAndAssetCtxs struct {
	Universe []universeAsset
	Ctxs     []assetCtx
}

func parseMetaAndAssetCtxs(raw json.RawMessage) (metaAndAssetCtxs, error) {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return metaAndAssetCtxs{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode metaAndAssetCtxs pair", err)
	}
	var meta struct {
		Universe []universeAsset `json:"universe"`
	}
	if err := json.Unmarshal(pair[0], &meta); err != nil {
		return metaAndAssetCtxs{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode universe", err)
	}
	var ctxs []assetCtx
	if err := json.Unmarshal(pair[1], &ctxs); err != nil {
		return metaAndAssetCtxs{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode asset contexts", err)
	}
	return metaAndAssetCtxs{Universe: meta.Universe, Ctxs: ctxs}, nil
}

// adaptHyperliquidPairs zips universe[i] with ctxs[i] positionally, the
// only way to consume this endpoint since it carries no shared join key.
// It fails closed with AdaptFailure on a length mismatch rather than
// silently misaligning two unrelated assets.
func adaptHyperliquidPairs(raw json.RawMessage) ([]universeAsset, []assetCtx, error) {
	parsed, err := parseMetaAndAssetCtxs(raw)
	if err != nil {
		return nil, nil, err
	}
	if len(parsed.Universe) != len(parsed.Ctxs) {
		return nil, nil, errs.New(errs.AdaptFailure, venueName, "universe and asset-context arrays have different lengths; positional zip is unsafe")
	}
	return parsed.Universe, parsed.Ctxs, nil
}

// OpenInterest adapts metaAndAssetCtxs into symbol->OpenInterest via the
// positional zip documented above.
func OpenInterest(raw json.RawMessage) (map[string]types.OpenInterest, error) {
	universe, ctxs, err := adaptHyperliquidPairs(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.OpenInterest, len(universe))
	for i, asset := range universe {
		oi, err := strconv.ParseFloat(ctxs[i].OpenInterest, 64)
		if err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to parse openInterest", err)
		}
		out[asset.Name] = types.OpenInterest{V: oi}
	}
	return out, nil
}

// FuturesTicker24h adapts metaAndAssetCtxs into symbol->TickerDaily via
// the same positional zip.
func FuturesTicker24h(raw json.RawMessage, onlyUsdt bool) (map[string]types.TickerDaily, error) {
	universe, ctxs, err := adaptHyperliquidPairs(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.TickerDaily, len(universe))
	for i, asset := range universe {
		mark, err := strconv.ParseFloat(ctxs[i].MarkPx, 64)
		if err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to parse markPx", err)
		}
		prevDay, err := strconv.ParseFloat(ctxs[i].PrevDayPx, 64)
		if err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to parse prevDayPx", err)
		}
		volume, err := strconv.ParseFloat(ctxs[i].DayNtlVlm, 64)
		if err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to parse dayNtlVlm", err)
		}
		pcnt := 0.0
		if prevDay != 0 {
			pcnt = (mark - prevDay) / prevDay * 100
		}
		out[asset.Name] = types.TickerDaily{P: adapt.RoundPercent(pcnt), V: volume}
	}
	return out, nil
}
