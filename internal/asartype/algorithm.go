package asartype

import (
	_ "crypto/sha256" // registers digest.SHA256

	"github.com/opencontainers/go-digest"
)

// Algorithm names the digest scheme used by an integrity record, as it
// appears in the JSON header.
type Algorithm string

// AlgorithmSHA256 is the only algorithm emitted by current archive writers.
const AlgorithmSHA256 Algorithm = "SHA256"

// algorithms maps header algorithm names to digest implementations.
// Adding a scheme is a single entry here.
var algorithms = map[Algorithm]digest.Algorithm{
	AlgorithmSHA256: digest.SHA256,
}

// Digest returns the digest implementation for a, and whether it is supported.
func (a Algorithm) Digest() (digest.Algorithm, bool) {
	alg, ok := algorithms[a]
	if !ok || !alg.Available() {
		return "", false
	}
	return alg, true
}

// Supported reports whether a can be verified.
func (a Algorithm) Supported() bool {
	_, ok := a.Digest()
	return ok
}

func (a Algorithm) String() string {
	return string(a)
}
