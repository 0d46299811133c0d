package kcex

import (
	"encoding/json"

	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "kcex"

// dealPush mirrors a sub.deal push (already gunzipped by DecodeFrame).
type dealPush struct {
	Channel string `json:"channel"`
	Symbol  string `json:"symbol"`
	Data    struct {
		Price float64 `json:"p"`
		Vol   float64 `json:"v"`
		Side  int     `json:"T"` // 1 = buy, 2 = sell
		Time  int64   `json:"t"`
	} `json:"data"`
}

// AggtradesMessage decodes a sub.deal push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var p dealPush
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode deal push", err)
	}
	side := types.Buy
	if p.Data.Side == 2 {
		side = types.Sell
	}
	return []types.AggTrade{{T: p.Data.Time, S: p.Symbol, Side: side, P: p.Data.Price, V: p.Data.Vol}}, nil
}

// openInterestRow mirrors GET /fapi/v1/contract/ticker's per-symbol row
// (still in contracts; the fixer's KCEX table scales it before use). The
// adapter reads holdVol verbatim and never multiplies by price itself.
type openInterestRow struct {
	Symbol  string  `json:"symbol"`
	HoldVol float64 `json:"holdVol"`
	Timestamp int64 `json:"timestamp"`
}

type openInterestResponse struct {
	Data []openInterestRow `json:"data"`
}

// OpenInterest adapts the raw (still-in-contracts) response. V is only
// valid base-asset units after fixer.Table.OpenInterestFix has scaled it
// by contract size; this function performs no price multiplication.
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

// fundingRateRow mirrors KCEX's aggregated funding-rate response row.
type fundingRateRow struct {
	Symbol      string  `json:"symbol"`
	FundingRate float64 `json:"fundingRate"`
}

type fundingRateResponse struct {
	Data []fundingRateRow `json:"data"`
}

// FundingRate adapts KCEX's aggregated {"data":[...]} funding-rate
// response into symbol->percent funding rate.
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
