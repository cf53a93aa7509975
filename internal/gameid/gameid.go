package gameid

import "github.com/google/uuid"

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// idLen is the number of characters needed for 128 bits
const idLen = 26

// RandSource interface for dependency injection of randomness.
// randutil.Source satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator handles game ID generation with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new game ID using UUIDv7 encoded as 26-character base32 string
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID using the generator's RandSource. The
// timestamp half always comes from the wall clock, so IDs sort by creation.
func (g *Generator) Generate() string {
	var id uuid.UUID
	if g.randSource != nil {
		id = uuid.Must(uuid.NewV7FromReader(sourceReader{g.randSource}))
	} else {
		id = uuid.Must(uuid.NewV7())
	}
	return encodeBase32(id)
}

// sourceReader feeds uuid random bits from a RandSource
type sourceReader struct {
	src RandSource
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}

// encodeBase32 writes the UUID most significant bit first, five bits per
// character. The final character carries three bits and two zero bits.
func encodeBase32(id uuid.UUID) string {
	var out [idLen]byte
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			if bit := i*5 + j; bit < 128 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}
