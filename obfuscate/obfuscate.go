// Package obfuscate masks and unmasks font payloads for embedding in
// e-books. Both supported schemes XOR the leading bytes of the font with a
// key derived from the publication identifier, so applying the transform a
// second time restores the original file.
package obfuscate

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Scheme selects the obfuscation algorithm.
type Scheme int

const (
	// IDPF is the EPUB standard scheme: SHA-1 key, 1040 byte region.
	IDPF Scheme = iota
	// Adobe is the vendor scheme: 16 byte UUID key, 1024 byte region.
	Adobe
)

func (s Scheme) String() string {
	if s == Adobe {
		return "Adobe"
	}
	return "IDPF"
}

const (
	idpfRegion  = 1040
	adobeRegion = 1024
)

// ErrIdentifierLength signals an identifier that does not decode to the 16
// key bytes the Adobe scheme requires.
var ErrIdentifierLength = errors.New("identifier does not decode to a 16 byte key")

// Key derives the XOR key from the publication identifier. IDPF keys are
// the SHA-1 digest of the identifier with all whitespace removed. Adobe
// keys are the identifier hex-decoded after removing a urn:uuid: prefix
// and all hyphens.
func Key(identifier string, scheme Scheme) ([]byte, error) {
	switch scheme {
	case IDPF:
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, identifier)
		sum := sha1.Sum([]byte(stripped))
		return sum[:], nil
	case Adobe:
		id := strings.TrimPrefix(identifier, "urn:uuid:")
		id = strings.ReplaceAll(id, "-", "")
		key, err := hex.DecodeString(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrIdentifierLength, err)
		}
		if len(key) != 16 {
			return nil, fmt.Errorf("%w: got %d bytes", ErrIdentifierLength, len(key))
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unknown obfuscation scheme %d", scheme)
	}
}

// Transform returns a copy of data with the obfuscation region XORed
// against the key for identifier. Payloads shorter than the region are
// transformed over their whole length, bytes past the region are copied
// unchanged.
func Transform(data []byte, identifier string, scheme Scheme) ([]byte, error) {
	key, err := Key(identifier, scheme)
	if err != nil {
		return nil, err
	}
	region := idpfRegion
	if scheme == Adobe {
		region = adobeRegion
	}
	if region > len(data) {
		region = len(data)
	}
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i < region; i++ {
		out[i] ^= key[i%len(key)]
	}
	return out, nil
}
