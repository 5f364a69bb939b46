// Package gameid generates session identifiers for games and simulation
// runs: a UUIDv7 written as 26 characters of lowercase Crockford base32, so
// ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// generator creates ids, optionally drawing random bits from a fixed reader
type generator struct {
	rand io.Reader
}

// newGenerator creates a generator. A nil reader uses crypto/rand.
func newGenerator(rand io.Reader) *generator {
	return &generator{rand: rand}
}

// Generate creates a new id using crypto/rand
func Generate() string {
	return newGenerator(nil).Generate()
}

// Generate creates a new id
func (g *generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return encode(id)
}

// encode writes a UUID as 130 bits of base32: two zero bits then the
// 128-bit value, so the first character is always 0-7.
func encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 {
				v |= (id[bit/8] >> (7 - bit%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// decode parses an encoded id back into its UUID
func decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, s[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit < 0 {
				continue
			}
			if v>>(4-b)&1 == 1 {
				id[bit/8] |= 1 << (7 - bit%8)
			}
		}
	}
	return id, nil
}

// Validate checks if an id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
