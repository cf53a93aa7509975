package gameid

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lox/unoforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^[0-7][0-9a-hjkmnp-tv-z]{25}$`)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, idLen)
	assert.Regexp(t, idPattern, id)
}

func TestGenerateUnique(t *testing.T) {
	// Generate multiple IDs and ensure they're unique
	ids := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	// Generate IDs with a small delay to ensure time-based sorting
	var ids []string

	for i := 0; i < 10; i++ {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}

	// Check that IDs are sorted (UUIDv7 should be sortable by timestamp)
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestEncodeBase32(t *testing.T) {
	var zero uuid.UUID
	assert.Equal(t, strings.Repeat("0", idLen), encodeBase32(zero))

	var ones uuid.UUID
	for i := range ones {
		ones[i] = 0xff
	}
	assert.Equal(t, strings.Repeat("z", idLen-1)+"w", encodeBase32(ones))

	u := uuid.MustParse("0190a5b2-3c4d-7e5f-8a6b-7c8d9e0fa1b2")
	got, err := decode(encodeBase32(u))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestAlphabet(t *testing.T) {
	// Ensure alphabet has no duplicate characters and is the correct length
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		if seen[char] {
			t.Errorf("duplicate character in alphabet: %c", char)
		}
		seen[char] = true
	}

	// Check specific requirements: no i, l, o, u
	forbidden := "ilou"
	for _, char := range forbidden {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
}

func TestGenerateWithRandSource(t *testing.T) {
	id := NewGenerator(randutil.New(1)).Generate()
	assert.Regexp(t, idPattern, id)

	u, err := decode(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
	assert.Equal(t, uuid.RFC4122, u.Variant())
}

func TestGeneratorRandomBitsFollowSource(t *testing.T) {
	a := NewGenerator(randutil.New(7))
	b := NewGenerator(randutil.New(7))

	ua, err := decode(a.Generate())
	require.NoError(t, err)
	ub, err := decode(b.Generate())
	require.NoError(t, err)

	// bytes 0-5 are the timestamp, 6-7 carry the sub-millisecond sequence
	assert.Equal(t, ua[8:], ub[8:])
}

func TestGeneratorUnique(t *testing.T) {
	gen := NewGenerator(randutil.New(3))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := gen.Generate()
		assert.Regexp(t, idPattern, id)
		assert.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}

// decode reverses encodeBase32
func decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if !idPattern.MatchString(id) {
		return u, fmt.Errorf("malformed game ID %q", id)
	}
	bit := 0
	for _, c := range id {
		v := strings.IndexRune(alphabet, c)
		for j := 4; j >= 0; j-- {
			if bit < 128 && v&(1<<j) != 0 {
				u[bit/8] |= 0x80 >> (bit % 8)
			}
			bit++
		}
	}
	return u, nil
}
