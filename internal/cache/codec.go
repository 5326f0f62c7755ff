// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"github.com/goccy/go-json"
)

// Codec is the encode/decode strategy for cached payloads. Supplying it
// at the call site fixes the payload shape at compile time; no runtime
// type inspection is involved.
type Codec[T any] struct {
	Encode func(T) ([]byte, error)
	Decode func([]byte) (T, error)
}

// JSONCodec returns a Codec storing values as JSON text. A struct type
// produces a JSON object, a slice type a JSON array of objects.
func JSONCodec[T any]() Codec[T] {
	return Codec[T]{
		Encode: func(v T) ([]byte, error) {
			return json.Marshal(v)
		},
		Decode: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
}
