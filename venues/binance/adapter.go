package binance

import (
	"encoding/json"
	"strings"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "binance"

// wsMessage is the multi-stream envelope Binance wraps every frame in
// when more than one stream is combined; single-stream connections send
// the inner payload directly, so adapters try the envelope first and
// fall back to the bare payload.
type wsMessage struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

func unwrap(raw json.RawMessage) json.RawMessage {
	var env wsMessage
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

// klineWSData mirrors Binance's kline stream payload.
type klineWSData struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Kline     struct {
		StartTime  int64  `json:"t"`
		CloseTime  int64  `json:"T"`
		Interval   string `json:"i"`
		OpenPrice  string `json:"o"`
		ClosePrice string `json:"c"`
		HighPrice  string `json:"h"`
		LowPrice   string `json:"l"`
		Volume     string `json:"v"`
		IsFinal    bool   `json:"x"`
	} `json:"k"`
}

// KlineMessage decodes one kline stream frame into a single-element slice.
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var msg klineWSData
	if err := json.Unmarshal(unwrap(raw), &msg); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode kline message", err)
	}
	o, err := adapt.ParseFloat(venueName, "k.o", msg.Kline.OpenPrice)
	if err != nil {
		return nil, err
	}
	h, err := adapt.ParseFloat(venueName, "k.h", msg.Kline.HighPrice)
	if err != nil {
		return nil, err
	}
	l, err := adapt.ParseFloat(venueName, "k.l", msg.Kline.LowPrice)
	if err != nil {
		return nil, err
	}
	c, err := adapt.ParseFloat(venueName, "k.c", msg.Kline.ClosePrice)
	if err != nil {
		return nil, err
	}
	v, err := adapt.ParseFloat(venueName, "k.v", msg.Kline.Volume)
	if err != nil {
		return nil, err
	}
	return []types.Kline{{
		S:         msg.Symbol,
		T:         msg.Kline.StartTime,
		O:         o, H: h, L: l, C: c,
		V:         v,
		I:         types.Timeframe(msg.Kline.Interval),
		CloseTime: msg.Kline.CloseTime,
		Closed:    msg.Kline.IsFinal,
	}}, nil
}

// aggTradeWSData mirrors Binance's aggTrade stream payload.
type aggTradeWSData struct {
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	BuyerMaker bool  `json:"m"` // true: buyer is market maker -> aggressor sold
}

// AggtradesMessage decodes one aggTrade stream frame.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var msg aggTradeWSData
	if err := json.Unmarshal(unwrap(raw), &msg); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode aggTrade message", err)
	}
	price, err := adapt.ParseFloat(venueName, "p", msg.Price)
	if err != nil {
		return nil, err
	}
	qty, err := adapt.ParseFloat(venueName, "q", msg.Quantity)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if msg.BuyerMaker {
		side = types.Sell
	}
	return []types.AggTrade{{T: msg.EventTime, S: msg.Symbol, Side: side, P: price, V: qty}}, nil
}

// liquidationWSData mirrors Binance's forceOrder stream payload.
type liquidationWSData struct {
	Order struct {
		Symbol           string `json:"s"`
		Side             string `json:"S"`
		OriginalQuantity string `json:"q"`
		AveragePrice     string `json:"ap"`
		OrderTradeTime   int64  `json:"T"`
	} `json:"o"`
}

// LiquidationMessage decodes one forceOrder stream frame.
func LiquidationMessage(raw json.RawMessage) ([]types.Liquidation, error) {
	var msg liquidationWSData
	if err := json.Unmarshal(unwrap(raw), &msg); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode forceOrder message", err)
	}
	price, err := adapt.ParseFloat(venueName, "o.ap", msg.Order.AveragePrice)
	if err != nil {
		return nil, err
	}
	qty, err := adapt.ParseFloat(venueName, "o.q", msg.Order.OriginalQuantity)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if strings.EqualFold(msg.Order.Side, "SELL") {
		side = types.Sell
	}
	return []types.Liquidation{{T: msg.Order.OrderTradeTime, S: msg.Order.Symbol, Side: side, V: qty, P: price}}, nil
}

// ticker24h mirrors the REST GET /api/v3/ticker/24hr row shape.
type ticker24h struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

// Ticker24h adapts the REST 24h ticker array into symbol->TickerDaily,
// filtering to USDT pairs when onlyUsdt is set.
func Ticker24h(raw json.RawMessage, onlyUsdt bool) (map[string]types.TickerDaily, error) {
	var rows []ticker24h
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode 24h ticker response", err)
	}
	out := make(map[string]types.TickerDaily, len(rows))
	for _, r := range rows {
		if onlyUsdt && !adapt.IsUsdtSymbol(r.Symbol) {
			continue
		}
		p, err := adapt.ParseFloat(venueName, "priceChangePercent", r.PriceChangePercent)
		if err != nil {
			return nil, err
		}
		v, err := adapt.ParseFloat(venueName, "quoteVolume", r.QuoteVolume)
		if err != nil {
			return nil, err
		}
		out[r.Symbol] = types.TickerDaily{P: adapt.RoundPercent(p), V: v}
	}
	return out, nil
}

// FuturesTicker24h has the identical response shape on Binance futures.
func FuturesTicker24h(raw json.RawMessage, onlyUsdt bool) (map[string]types.TickerDaily, error) {
	return Ticker24h(raw, onlyUsdt)
}

// Tickers extracts the bare symbol list from a 24h ticker response.
func Tickers(raw json.RawMessage, onlyUsdt bool) ([]string, error) {
	m, err := Ticker24h(raw, onlyUsdt)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out, nil
}

// FuturesTickers is Tickers against the futures response shape.
func FuturesTickers(raw json.RawMessage, onlyUsdt bool) ([]string, error) {
	return Tickers(raw, onlyUsdt)
}

// premiumIndexRow mirrors GET /fapi/v1/premiumIndex.
type premiumIndexRow struct {
	Symbol          string `json:"symbol"`
	LastFundingRate string `json:"lastFundingRate"`
}

// FundingRate adapts the premium-index array into symbol->percent funding
// rate (wire rate x 100).
func FundingRate(raw json.RawMessage) (map[string]float64, error) {
	var rows []premiumIndexRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode premium index response", err)
	}
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		rate, err := adapt.ParseFloat(venueName, "lastFundingRate", r.LastFundingRate)
		if err != nil {
			return nil, err
		}
		out[r.Symbol] = rate * 100
	}
	return out, nil
}

// openInterestRow mirrors GET /futures/data/openInterestHist's single-
// symbol response.
type openInterestRow struct {
	Symbol               string `json:"symbol"`
	SumOpenInterest      string `json:"sumOpenInterest"`
	Timestamp            int64  `json:"timestamp"`
}

// OpenInterest adapts a single-symbol open-interest-history response.
// Binance already reports base-asset units; no fixer scaling is needed.
func OpenInterest(raw json.RawMessage) (map[string]types.OpenInterest, error) {
	var rows []openInterestRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode open interest response", err)
	}
	out := make(map[string]types.OpenInterest, len(rows))
	for _, r := range rows {
		v, err := adapt.ParseFloat(venueName, "sumOpenInterest", r.SumOpenInterest)
		if err != nil {
			return nil, err
		}
		out[r.Symbol] = types.OpenInterest{T: r.Timestamp, V: v}
	}
	return out, nil
}

// depthResponse mirrors GET /api/v3/depth.
type depthResponse struct {
	Asks [][2]string `json:"asks"`
	Bids [][2]string `json:"bids"`
}

// Depth adapts a REST depth snapshot, sorting asks ascending and bids
// descending as types.Depth requires.
func Depth(raw json.RawMessage, symbol string) (types.Depth, error) {
	var resp depthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return types.Depth{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode depth response", err)
	}
	asks, err := adapt.ParseLevels(venueName, "ask", resp.Asks)
	if err != nil {
		return types.Depth{}, err
	}
	bids, err := adapt.ParseLevels(venueName, "bid", resp.Bids)
	if err != nil {
		return types.Depth{}, err
	}
	d := types.Depth{Symbol: symbol, Asks: asks, Bids: bids}
	adapt.SortDepth(&d)
	return d, nil
}

// klineRow mirrors one row of GET /api/v3/klines: a 12-element array.
type klineRow [12]interface{}

// Kline adapts the REST klines array response into []types.Kline.
func Kline(raw json.RawMessage, symbol string, tf types.Timeframe) ([]types.Kline, error) {
	var rows []klineRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode klines response", err)
	}
	out := make([]types.Kline, 0, len(rows))
	for _, r := range rows {
		k, err := adaptKlineRow(r, symbol, tf)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// FuturesKline has the identical row shape on Binance futures.
func FuturesKline(raw json.RawMessage, symbol string, tf types.Timeframe) ([]types.Kline, error) {
	return Kline(raw, symbol, tf)
}

func adaptKlineRow(r klineRow, symbol string, tf types.Timeframe) (types.Kline, error) {
	openTime, _ := r[0].(float64)
	closeTime, _ := r[6].(float64)
	o, err := floatField(r[1])
	if err != nil {
		return types.Kline{}, err
	}
	h, err := floatField(r[2])
	if err != nil {
		return types.Kline{}, err
	}
	l, err := floatField(r[3])
	if err != nil {
		return types.Kline{}, err
	}
	c, err := floatField(r[4])
	if err != nil {
		return types.Kline{}, err
	}
	v, err := floatField(r[5])
	if err != nil {
		return types.Kline{}, err
	}
	return types.Kline{
		S: symbol, T: int64(openTime),
		O: o, H: h, L: l, C: c, V: v,
		I: tf, CloseTime: int64(closeTime), Closed: true,
	}, nil
}

func floatField(v interface{}) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, errs.New(errs.AdaptFailure, venueName, "unexpected kline field type")
	}
	return adapt.ParseFloat(venueName, "kline field", s)
}
