package mexc

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "mexc"

// spotKlineWSData mirrors the spot.public.kline push's publicSpotKline
// field (the spot gateway keeps JSON framing for kline and ticker
// channels even after the aggtrade-channel protobuf migration).
type spotKlineWSData struct {
	Symbol string `json:"s"`
	Data   struct {
		Interval    string `json:"interval"`
		WindowStart int64  `json:"windowStart"`
		WindowEnd   int64  `json:"windowEnd"`
		OpeningPrice string `json:"openingPrice"`
		ClosingPrice string `json:"closingPrice"`
		HighestPrice string `json:"highestPrice"`
		LowestPrice  string `json:"lowestPrice"`
		Volume       string `json:"volume"`
	} `json:"publicSpotKline"`
}

// KlineMessage decodes a spot kline push.
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var msg spotKlineWSData
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode kline message", err)
	}
	o, err := adapt.ParseFloat(venueName, "openingPrice", msg.Data.OpeningPrice)
	if err != nil {
		return nil, err
	}
	h, err := adapt.ParseFloat(venueName, "highestPrice", msg.Data.HighestPrice)
	if err != nil {
		return nil, err
	}
	l, err := adapt.ParseFloat(venueName, "lowestPrice", msg.Data.LowestPrice)
	if err != nil {
		return nil, err
	}
	c, err := adapt.ParseFloat(venueName, "closingPrice", msg.Data.ClosingPrice)
	if err != nil {
		return nil, err
	}
	v, err := adapt.ParseFloat(venueName, "volume", msg.Data.Volume)
	if err != nil {
		return nil, err
	}
	return []types.Kline{{
		S: msg.Symbol, T: msg.Data.WindowStart, O: o, H: h, L: l, C: c, V: v,
		I: types.Timeframe(msg.Data.Interval), CloseTime: msg.Data.WindowEnd, Closed: true,
	}}, nil
}

// futuresDealWSData mirrors a futures sub.deal push.
type futuresDealWSData struct {
	Symbol string `json:"symbol"`
	Data   struct {
		Price float64 `json:"p"`
		Vol   float64 `json:"v"`
		Side  int     `json:"T"` // 1 = buy, 2 = sell
		Time  int64   `json:"t"`
	} `json:"data"`
}

// AggtradesMessage decodes a futures sub.deal push. The spot aggtrade
// channel ships protobuf after MEXC's migration; there is no protobuf
// decoder here, so those binary frames fail JSON decoding and the engine
// logs and skips them. This function only covers the futures JSON shape.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var msg futuresDealWSData
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode deal message", err)
	}
	side := types.Buy
	if msg.Data.Side == 2 {
		side = types.Sell
	}
	return []types.AggTrade{{T: msg.Data.Time, S: msg.Symbol, Side: side, P: msg.Data.Price, V: msg.Data.Vol}}, nil
}

// tickerWSData mirrors a spot.public.bookTicker push.
type tickerWSData struct {
	Symbol string `json:"s"`
}

// fundingRateResponse mirrors MEXC futures' aggregated funding-rate
// response shape (a single {"data":[...]} envelope).
type fundingRateRow struct {
	Symbol      string  `json:"symbol"`
	FundingRate float64 `json:"fundingRate"`
}

type fundingRateResponse struct {
	Data []fundingRateRow `json:"data"`
}

// FundingRate adapts MEXC futures' aggregated funding-rate response into
// symbol->percent funding rate.
func FundingRate(raw json.RawMessage) (map[string]float64, error) {
	var resp fundingRateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode funding rate response", err)
	}
	out := make(map[string]float64, len(resp.Data))
	for _, r := range resp.Data {
		out[r.Symbol] = r.FundingRate * 100
	}
	return out, nil
}

// openInterestRow mirrors a row of GET /api/v1/contract/ticker (contract
// units; the fixer's MEXC table must scale these to base-asset units).
type openInterestRow struct {
	Symbol  string  `json:"symbol"`
	HoldVol float64 `json:"holdVol"`
	Timestamp int64 `json:"timestamp"`
}

type openInterestResponse struct {
	Data []openInterestRow `json:"data"`
}

// OpenInterest adapts the raw (still-in-contracts) response. Callers must
// apply fixer.Table.OpenInterestFix before trusting V as base units.
func OpenInterest(raw json.RawMessage) (map[string]types.OpenInterest, error) {
	var resp openInterestResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode open interest response", err)
	}
	out := make(map[string]types.OpenInterest, len(resp.Data))
	for _, r := range resp.Data {
		out[r.Symbol] = types.OpenInterest{T: r.Timestamp, V: r.HoldVol}
	}
	return out, nil
}
