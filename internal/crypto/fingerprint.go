package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const fingerprintSize = 8

// Fingerprint derives a short stable identifier from device attributes.
// Attributes are normalized for case and surrounding whitespace, so the same
// stick reports the same ID on every platform backend.
func Fingerprint(attrs ...string) string {
	h, err := blake2b.New(fingerprintSize, []byte("usbprep-device"))
	if err != nil {
		// Only fails for invalid sizes or keys longer than 64 bytes.
		panic(err)
	}
	for _, a := range attrs {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(a))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// MatchFingerprint reports whether id is a prefix of the fingerprint fp, so
// operators can type an abbreviated ID.
func MatchFingerprint(fp, id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return len(id) >= 4 && strings.HasPrefix(fp, id)
}
