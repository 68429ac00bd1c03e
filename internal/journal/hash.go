package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTranscript separates transcript digests from any other hash use.
const DomainTranscript = "abacus/transcript/v1"

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest hashes the ordered inputs of a session. Two sessions fed the same keys
// under the same settings produce the same digest.
func Digest(inputs []Input) (string, error) {
	list := make([]any, len(inputs))
	for i, in := range inputs {
		list[i] = in.canonical()
	}

	canonical, err := MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("digest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTranscript, canonical), nil
}
