package storage

import (
	"encoding/json"
	"fmt"
)

// Codec encodes keys and values for a byte-oriented backend such as pebble.
//
// Backends order entries by encoded key, so EncodeKey must keep the natural
// ordering of the keys it encodes.
type Codec[K, V any] interface {
	EncodeKey(K) ([]byte, error)
	DecodeKey([]byte) (K, error)
	EncodeValue(V) ([]byte, error)
	DecodeValue([]byte) (V, error)
}

var _ Codec[string, any] = JSONCodec[string, any]{}

// JSONCodec stores string keys as their raw bytes, which sort the same way
// the strings do, and values as JSON.
type JSONCodec[K ~string, V any] struct{}

func (JSONCodec[K, V]) EncodeKey(key K) ([]byte, error) {
	return []byte(key), nil
}

func (JSONCodec[K, V]) DecodeKey(data []byte) (K, error) {
	return K(data), nil
}

func (JSONCodec[K, V]) EncodeValue(value V) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return b, nil
}

func (JSONCodec[K, V]) DecodeValue(data []byte) (V, error) {
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode value: %w", err)
	}
	return value, nil
}
