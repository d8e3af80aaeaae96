package main

import (
	"fmt"
	"strings"

	"github.com/saylorsolutions/savelock/pkg/securestore"
)

// valueHandler reads and writes one value type using its legacy text form.
type valueHandler struct {
	get func(s *securestore.Store, key string) string
	set func(s *securestore.Store, key, value string) error
}

func handlerFor[T any](codec securestore.Codec[T]) valueHandler {
	return valueHandler{
		get: func(s *securestore.Store, key string) string {
			var zero T
			return codec.FormatLegacy(securestore.Get(s, codec, key, zero))
		},
		set: func(s *securestore.Store, key, value string) error {
			v, err := codec.ParseLegacy(value)
			if err != nil {
				return err
			}
			return securestore.Set(s, codec, key, v)
		},
	}
}

var handlers = map[securestore.DataType]valueHandler{
	securestore.Int:        handlerFor(securestore.IntCodec),
	securestore.UInt:       handlerFor(securestore.UIntCodec),
	securestore.Long:       handlerFor(securestore.LongCodec),
	securestore.Float:      handlerFor(securestore.FloatCodec),
	securestore.Double:     handlerFor(securestore.DoubleCodec),
	securestore.Bool:       handlerFor(securestore.BoolCodec),
	securestore.String:     handlerFor(securestore.StringCodec),
	securestore.ByteArray:  handlerFor(securestore.ByteArrayCodec),
	securestore.Vector2:    handlerFor(securestore.Vector2Codec),
	securestore.Vector3:    handlerFor(securestore.Vector3Codec),
	securestore.Quaternion: handlerFor(securestore.QuaternionCodec),
	securestore.Color:      handlerFor(securestore.ColorCodec),
	securestore.Rect:       handlerFor(securestore.RectCodec),
}

func lookupHandler(name string) (valueHandler, error) {
	name = strings.ToLower(name)
	for typ, h := range handlers {
		if typ.String() == name {
			return h, nil
		}
	}
	return valueHandler{}, fmt.Errorf("unknown type '%s'", name)
}

func typeNames() string {
	names := make([]string, 0, len(handlers))
	for _, typ := range []securestore.DataType{
		securestore.Int, securestore.UInt, securestore.Long, securestore.Float, securestore.Double, securestore.Bool,
		securestore.String, securestore.ByteArray, securestore.Vector2, securestore.Vector3, securestore.Quaternion,
		securestore.Color, securestore.Rect,
	} {
		names = append(names, typ.String())
	}
	return strings.Join(names, ", ")
}
