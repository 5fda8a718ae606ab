package hash

import (
	"crypto/sha256"
)

type Hashable interface {
	GetHash() []byte
}

func HashBytes(data []byte) []byte {
	bytes := sha256.Sum256(data)
	return bytes[:]
}

// HashConcat hashes the concatenation of parts without aliasing any of them.
func HashConcat(parts ...[]byte) []byte {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	return h.Sum(nil)
}
