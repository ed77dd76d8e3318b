package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefix for content-addressed descriptor identity.
// Version suffix enables future algorithm migration.
const domainDescriptor = "ddrtool/descriptor/v1"

// Hash computes the content-addressed identity of the rendered descriptor.
// Format: SHA256(domain + 0x00 + install + 0x00 + remove), hex encoded.
// The null separators prevent boundary ambiguity between the parts.
//
// Two builds with byte-identical halves hash identically, which is how the
// catalog detects descriptor drift between runs.
func (d *Descriptor) Hash() string {
	h := sha256.New()
	h.Write([]byte(domainDescriptor))
	h.Write([]byte{0x00})
	h.Write([]byte(d.installText))
	h.Write([]byte{0x00})
	h.Write([]byte(d.removeText))
	return hex.EncodeToString(h.Sum(nil))
}
