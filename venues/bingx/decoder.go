package bingx

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"

	"marketfeed/errs"
	"marketfeed/types"
)

// DecodeFrame implements wsengine.FrameDecoder: every BingX frame is
// gzip-compressed; the decompressed payload is either the literal text
// "Ping" (answered with "Pong") or a JSON market data frame.
func (Binding) DecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.BingX), "failed to open gzip frame", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.BingX), "failed to decompress frame", err)
	}

	if string(decompressed) == "Ping" {
		return nil, true, "Pong", nil
	}

	var v interface{}
	if err := json.Unmarshal(decompressed, &v); err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, string(types.BingX), "failed to decode frame", err)
	}
	return v, false, nil, nil
}
