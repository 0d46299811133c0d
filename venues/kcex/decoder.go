package kcex

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"

	"marketfeed/errs"
	"marketfeed/types"
)

// DecodeFrame implements wsengine.FrameDecoder: KCEX subscribe frames ask
// for compress:true, so every inbound frame is gzip-compressed JSON. When
// Fixer is wired, a sub.deal push is decoded straight into fixed
// []types.AggTrade instead of the generic JSON value.
func (b Binding) DecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.KCEX), "failed to open gzip frame", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.KCEX), "failed to decompress frame", err)
	}

	if b.Fixer != nil {
		var peek struct {
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(decompressed, &peek); err == nil && peek.Channel == "push.deal" {
			trades, err := AggtradesMessage(decompressed)
			if err != nil {
				return nil, false, nil, err
			}
			for i := range trades {
				trades[i].V = b.Fixer.AggtradeFix(trades[i].S, trades[i].V)
			}
			return trades, false, nil, nil
		}
	}

	var v interface{}
	if err := json.Unmarshal(decompressed, &v); err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.KCEX), "failed to decode frame", err)
	}
	return v, false, nil, nil
}
