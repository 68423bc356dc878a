package rpc

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the engine speaks.
const CodecName = "msgpack"

func init() {
	encoding.RegisterCodec(codec{})
}

// codec carries wire messages as MessagePack, keyed by their json tag
// names. Unlike JSON it round-trips NaN and infinite reals.
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (codec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func (codec) Name() string { return CodecName }
