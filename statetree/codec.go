package statetree

import "github.com/fxamacker/cbor/v2"

// encMode and decMode are package-level because cbor.EncMode/DecMode are
// immutable and safe for concurrent use once built; constructing them per
// call would be wasted work on every record encode.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		Time:          cbor.TimeUnix,
		ShortestFloat: cbor.ShortestFloat16,
	}.EncMode()
	if err != nil {
		panic("statetree: invalid cbor encoder options: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("statetree: invalid cbor decoder options: " + err.Error())
	}
}

// MarshalRecord encodes v deterministically: the same Go value always
// produces the same bytes, which matters because record data is what
// UpdateRecord compares to detect a stale read.
func MarshalRecord(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalRecord decodes data produced by MarshalRecord into v.
func UnmarshalRecord(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
