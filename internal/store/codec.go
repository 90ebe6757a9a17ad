package store

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	argsEnc cbor.EncMode
	argsDec cbor.DecMode
)

func init() {
	var err error
	argsEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	argsDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// encodeArgs stores bound arguments as canonical CBOR.
func encodeArgs(args map[string]any) ([]byte, error) {
	if len(args) == 0 {
		return nil, nil
	}
	b, err := argsEnc.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	return b, nil
}

func decodeArgs(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var args map[string]any
	if err := argsDec.Unmarshal(b, &args); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}
	return args, nil
}
