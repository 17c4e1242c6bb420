package tag

import "github.com/crateworks/seratotag/internal/types"

// The legacy markers tag stores 24-bit values spread over four bytes with
// the high bit of each byte clear, so the payload survives ID3 editors
// that reject bytes resembling frame sync markers. Serato's own tooling
// calls this encoding "serato32".

// serato32Absent is the on-disk sentinel for an absent position.
var serato32Absent = [4]byte{0x7F, 0x7F, 0x7F, 0x7F}

// serato32Decode unpacks four 7-bit bytes into a 24-bit value.
func serato32Decode(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// serato32Encode packs the low 24 bits of v into four 7-bit bytes.
func serato32Encode(v uint32) [4]byte {
	return [4]byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// serato32Color decodes a serato32-packed RGB color.
func serato32Color(b []byte) types.Color {
	v := serato32Decode(b)
	return types.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}
