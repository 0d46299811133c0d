package bybit

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "bybit"

// wsEnvelope wraps every Bybit v5 public WS push.
type wsEnvelope struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// klineEntry mirrors one element of a kline.* push's data array.
type klineEntry struct {
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Interval string `json:"interval"`
	Open     string `json:"open"`
	Close    string `json:"close"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Turnover string `json:"turnover"`
	Confirm  bool   `json:"confirm"`
}

// KlineMessage decodes a kline.* push. The symbol is parsed from the
// topic suffix (kline.<interval>.<symbol>) since Bybit does not repeat it
// per-entry.
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode kline envelope", err)
	}
	symbol := topicSuffix(env.Topic)

	var entries []klineEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode kline data", err)
	}
	out := make([]types.Kline, 0, len(entries))
	for _, e := range entries {
		o, err := adapt.ParseFloat(venueName, "open", e.Open)
		if err != nil {
			return nil, err
		}
		h, err := adapt.ParseFloat(venueName, "high", e.High)
		if err != nil {
			return nil, err
		}
		l, err := adapt.ParseFloat(venueName, "low", e.Low)
		if err != nil {
			return nil, err
		}
		c, err := adapt.ParseFloat(venueName, "close", e.Close)
		if err != nil {
			return nil, err
		}
		v, err := adapt.ParseFloat(venueName, "turnover", e.Turnover)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Kline{
			S: symbol, T: e.Start, O: o, H: h, L: l, C: c, V: v,
			I: types.Timeframe(e.Interval), CloseTime: e.End, Closed: e.Confirm,
		})
	}
	return out, nil
}

func topicSuffix(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '.' {
			return topic[i+1:]
		}
	}
	return topic
}

// tradeEntry mirrors one element of a publicTrade.* push's data array.
type tradeEntry struct {
	Time   int64  `json:"T"`
	Symbol string `json:"s"`
	Side   string `json:"S"`
	Price  string `json:"p"`
	Size   string `json:"v"`
}

// AggtradesMessage decodes a publicTrade.* push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade envelope", err)
	}
	var entries []tradeEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade data", err)
	}
	out := make([]types.AggTrade, 0, len(entries))
	for _, e := range entries {
		price, err := adapt.ParseFloat(venueName, "p", e.Price)
		if err != nil {
			return nil, err
		}
		size, err := adapt.ParseFloat(venueName, "v", e.Size)
		if err != nil {
			return nil, err
		}
		side := types.Buy
		if e.Side == "Sell" {
			side = types.Sell
		}
		out = append(out, types.AggTrade{T: e.Time, S: e.Symbol, Side: side, P: price, V: size})
	}
	return out, nil
}

// tickerEntry mirrors the data object of a tickers.* push.
type tickerEntry struct {
	Symbol       string `json:"symbol"`
	Price24hPcnt string `json:"price24hPcnt"`
	Turnover24h  string `json:"turnover24h"`
}

// TickerMessage decodes a tickers.* push into a single-entry map.
func TickerMessage(raw json.RawMessage) (map[string]types.TickerDaily, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode ticker envelope", err)
	}
	var e tickerEntry
	if err := json.Unmarshal(env.Data, &e); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode ticker data", err)
	}
	pcnt, err := adapt.ParseFloat(venueName, "price24hPcnt", e.Price24hPcnt)
	if err != nil {
		return nil, err
	}
	turnover, err := adapt.ParseFloat(venueName, "turnover24h", e.Turnover24h)
	if err != nil {
		return nil, err
	}
	return map[string]types.TickerDaily{e.Symbol: {P: adapt.RoundPercent(pcnt * 100), V: turnover}}, nil
}

// liquidationEntry mirrors the data object of a liquidation.* push.
type liquidationEntry struct {
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Size      string `json:"size"`
	Price     string `json:"price"`
	UpdatedAt int64  `json:"updatedTime"`
}

// LiquidationMessage decodes a liquidation.* push.
func LiquidationMessage(raw json.RawMessage) ([]types.Liquidation, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode liquidation envelope", err)
	}
	var e liquidationEntry
	if err := json.Unmarshal(env.Data, &e); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode liquidation data", err)
	}
	size, err := adapt.ParseFloat(venueName, "size", e.Size)
	if err != nil {
		return nil, err
	}
	price, err := adapt.ParseFloat(venueName, "price", e.Price)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if e.Side == "Sell" {
		side = types.Sell
	}
	return []types.Liquidation{{T: e.UpdatedAt, S: e.Symbol, Side: side, V: size, P: price}}, nil
}

// restTickerRow mirrors GET /v5/market/tickers' result.list rows.
type restTickerRow struct {
	Symbol       string `json:"symbol"`
	Price24hPcnt string `json:"price24hPcnt"`
	Turnover24h  string `json:"turnover24h"`
}

type restTickerResponse struct {
	Result struct {
		List []restTickerRow `json:"list"`
	} `json:"result"`
}

// Ticker24h adapts the REST ticker list into symbol->TickerDaily.
func Ticker24h(raw json.RawMessage, onlyUsdt bool) (map[string]types.TickerDaily, error) {
	var resp restTickerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode ticker response", err)
	}
	out := make(map[string]types.TickerDaily, len(resp.Result.List))
	for _, r := range resp.Result.List {
		if onlyUsdt && !adapt.IsUsdtSymbol(r.Symbol) {
			continue
		}
		pcnt, err := adapt.ParseFloat(venueName, "price24hPcnt", r.Price24hPcnt)
		if err != nil {
			return nil, err
		}
		turnover, err := adapt.ParseFloat(venueName, "turnover24h", r.Turnover24h)
		if err != nil {
			return nil, err
		}
		out[r.Symbol] = types.TickerDaily{P: adapt.RoundPercent(pcnt * 100), V: turnover}
	}
	return out, nil
}

// FuturesTicker24h has the identical shape for linear perpetuals.
func FuturesTicker24h(raw json.RawMessage, onlyUsdt bool) (map[string]types.TickerDaily, error) {
	return Ticker24h(raw, onlyUsdt)
}
