// Package json is the JSON codec used across the module. It is backed by
// sonic and keeps encoding/json compatible semantics.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

func Unmarshal(b []byte, v any) error {
	return api.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) sonic.Encoder {
	return api.NewEncoder(w)
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) sonic.Decoder {
	return api.NewDecoder(r)
}
