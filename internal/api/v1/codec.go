package apiv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Codec is the content-subtype every Accounts call is sent with.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return Codec }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
