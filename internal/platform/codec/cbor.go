package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 section 4.2), so the
// same state always produces identical bytes.
var encMode cbor.EncMode

// decMode rejects unknown fields and duplicate map keys.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR is the compact binary codec.
type CBOR struct{}

// Name implements Codec.
func (CBOR) Name() string { return NameCBOR }

// Marshal implements Codec.
func (CBOR) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal implements Codec.
func (CBOR) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
