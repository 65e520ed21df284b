package store

import (
	"bytes"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackContentType is the media type of EncodeMsgpack output
const MsgpackContentType = "application/msgpack"

// EncodeMsgpack writes state as msgpack. Field names follow the json tags,
// so both exports carry the same keys.
func EncodeMsgpack(w io.Writer, state State) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(state)
}

// MarshalMsgpack returns the msgpack encoding of state
func MarshalMsgpack(state State) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeMsgpack(&buf, state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
