// Package tourneyid generates sortable tournament identifiers: a
// UUIDv7 (millisecond timestamp plus random tail) rendered as 26
// characters of Crockford base32, so IDs created later sort later.
package tourneyid

import (
	"crypto/rand"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail. Satisfied by *rand/v2.Rand via
// IntN; nil means crypto/rand.
type RandSource interface {
	IntN(n int) int
}

// New generates a tournament ID using crypto/rand.
func New() string {
	return NewWithRandSource(nil)
}

// NewWithRandSource generates a tournament ID with a deterministic
// random tail, for reproducible simulation runs.
func NewWithRandSource(source RandSource) string {
	var id [16]byte

	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if source != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(source.IntN(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("tourneyid: " + err.Error())
		}
	}

	// UUIDv7 version and variant bits
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encodeBase32(id)
}

// encodeBase32 packs 128 bits into 26 base32 characters, 5 bits each.
func encodeBase32(data [16]byte) string {
	out := make([]byte, 26)
	for i := range out {
		bit := i * 5
		byteIdx, bitIdx := bit/8, bit%8

		var v uint8
		if byteIdx < 16 {
			if bitIdx <= 3 {
				v = (data[byteIdx] >> (3 - bitIdx)) & 0x1f
			} else {
				v = (data[byteIdx] << (bitIdx - 3)) & 0x1f
				if byteIdx+1 < 16 {
					v |= data[byteIdx+1] >> (11 - bitIdx)
				}
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id is a well-formed tournament ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("tournament ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("tournament ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
