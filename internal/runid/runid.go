// Package runid generates sortable identifiers for simulation runs: a UUIDv7
// rendered as 26 characters of Crockford base32, in the style of TypeID.
package runid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID
const Length = 26

// RandSource supplies the random bits of an ID. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// New returns an ID stamped with now. A nil src draws from crypto/rand.
func New(now time.Time, src RandSource) string {
	var uuid [16]byte

	ms := uint64(now.UnixMilli())
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if src != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(src.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("runid: failed to read random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encode(uuid)
}

// encode writes the 128 bits as 130, with two leading zero bits
func encode(uuid [16]byte) string {
	hi := binary.BigEndian.Uint64(uuid[:8])
	lo := binary.BigEndian.Uint64(uuid[8:])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is a well-formed run ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}

// Time returns the millisecond timestamp embedded in id
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}

	var hi, lo uint64
	for _, c := range id {
		v := uint64(strings.IndexRune(alphabet, c))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}
	return time.UnixMilli(int64(hi >> 16)), nil
}
