// Package state defines the persisted account records of the pool program
// and their borsh codecs. Field order is the wire layout; do not reorder.
package state

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

func marshal(what string, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", what, err)
	}
	return buf.Bytes(), nil
}

func unmarshal(what string, data []byte, v interface{}) error {
	if err := bin.NewBorshDecoder(data).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}
