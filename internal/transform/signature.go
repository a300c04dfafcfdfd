// Package transform turns parsed export orders into line item payloads
// ready for the target system.
package transform

import (
	"crypto/md5"
	"encoding/hex"
)

// Signature returns a 6-character lowercase hex fingerprint of text.
// It is a display/traceability aid, not an identity key.
func Signature(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])[:6]
}
