package signature

import (
	"crypto/md5"
	"encoding/hex"
)

// MD5Generator signs with an MD5 digest. MD5 is used for integrity of the URL
// shape only and is not a security boundary.
type MD5Generator struct {
	salted
}

// NewMD5 creates an MD5Generator keyed with salt.
func NewMD5(salt string) *MD5Generator {
	return &MD5Generator{salted{salt: salt}}
}

// Sign implements Generator.
func (g *MD5Generator) Sign(sourceType, category, fileName string, width, height, cast int) string {
	sum := md5.Sum([]byte(g.canonical(sourceType, category, fileName, width, height, cast)))
	return hex.EncodeToString(sum[:])
}

// String hides the salt.
func (g *MD5Generator) String() string {
	return "signature.MD5Generator"
}
