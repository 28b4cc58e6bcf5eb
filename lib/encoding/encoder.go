// Package encoding packs structural descriptions of trees with msgpack.
//
// Output is deterministic: map keys are sorted, so equal values always
// produce equal bytes and equal digests.
package encoding

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidFormat is returned when packed data can not be decoded.
var ErrInvalidFormat = errors.New("encoding: invalid packed data")

// Encodable is implemented by types that describe themselves as a map.
// Such values are packed from that map instead of by reflection.
type Encodable interface {
	TNEncode() map[string]any
}

// Marshal packs v. Encodable values are packed through TNEncode.
func Marshal(v any) ([]byte, error) {
	if enc, ok := v.(Encodable); ok {
		v = enc.TNEncode()
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal unpacks data into v.
func Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrInvalidFormat
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	return nil
}

// Digest returns a short hex digest of v's packed form.
func Digest(v any) (string, error) {
	packed, err := Marshal(v)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(packed)
	return hex.EncodeToString(h[:8]), nil
}
