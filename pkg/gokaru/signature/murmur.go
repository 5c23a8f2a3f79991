package signature

import (
	"strconv"

	"github.com/spaolacci/murmur3"
)

// MurmurGenerator signs with MurmurHash3 (x86, 32-bit, seed 0). The unsigned
// value is rendered in base 32, lowercase, no padding.
type MurmurGenerator struct {
	salted
}

// NewMurmur creates a MurmurGenerator keyed with salt.
func NewMurmur(salt string) *MurmurGenerator {
	return &MurmurGenerator{salted{salt: salt}}
}

// Sign implements Generator.
func (g *MurmurGenerator) Sign(sourceType, category, fileName string, width, height, cast int) string {
	h := murmur3.Sum32([]byte(g.canonical(sourceType, category, fileName, width, height, cast)))
	return strconv.FormatUint(uint64(h), 32)
}

// String hides the salt.
func (g *MurmurGenerator) String() string {
	return "signature.MurmurGenerator"
}
