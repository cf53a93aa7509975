package deck

import (
	"sort"
	"testing"

	"github.com/lox/unoforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same offset from the top of the range.
type fixedSource struct{ fromTop int }

func (f fixedSource) IntN(n int) int {
	v := n - 1 - f.fromTop
	if v < 0 {
		return 0
	}
	return v
}

// zeroSource always picks index 0.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

func TestStandardComposition(t *testing.T) {
	cards := Standard()
	require.Len(t, cards, StandardSize)

	faces := map[Face]int{}
	colors := map[Color]int{}
	for i, c := range cards {
		assert.Equal(t, i, c.ID, "ids are sequential")
		faces[c.Face]++
		colors[c.Color]++
	}

	assert.Equal(t, 4, faces[Zero])
	for f := One; f <= Nine; f++ {
		assert.Equal(t, 8, faces[f], f.String())
	}
	assert.Equal(t, 8, faces[Skip])
	assert.Equal(t, 8, faces[Reverse])
	assert.Equal(t, 8, faces[DrawTwo])
	assert.Equal(t, 4, faces[WildCard])
	assert.Equal(t, 4, faces[WildDrawFour])
	assert.Zero(t, faces[WildDrawEight], "wild draw eight is debug only")

	for _, c := range OrdinaryColors {
		assert.Equal(t, 25, colors[c], c.String())
	}
	assert.Equal(t, 8, colors[Wild])
}

func TestShuffleIsPermutation(t *testing.T) {
	cards := Standard()
	Shuffle(cards, randutil.New(1))

	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	sort.Ints(ids)
	for i, id := range ids {
		require.Equal(t, i, id)
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	moved := 0
	for seed := int64(0); seed < 10; seed++ {
		cards := Standard()
		Shuffle(cards, randutil.New(seed))
		for i, c := range cards {
			if c.ID != i {
				moved++
				break
			}
		}
	}
	assert.Equal(t, 10, moved, "every seeded shuffle should reorder the deck")
}

func TestShuffleDeterministicOrdering(t *testing.T) {
	tests := []struct {
		name   string
		source randutil.Source
		want   []int
	}{
		{name: "always last keeps order", source: fixedSource{}, want: []int{0, 1, 2, 3}},
		{name: "always first rotates", source: zeroSource{}, want: []int{1, 2, 3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := Standard()[:4]
			Shuffle(cards, tt.source)
			got := make([]int, len(cards))
			for i, c := range cards {
				got[i] = c.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameSeedSameShuffle(t *testing.T) {
	a, b := Standard(), Standard()
	Shuffle(a, randutil.New(99))
	Shuffle(b, randutil.New(99))
	assert.Equal(t, a, b)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{input: "Red", want: Red},
		{input: " yellow ", want: Yellow},
		{input: "g", want: Green},
		{input: "BLUE", want: Blue},
		{input: "wild", want: Wild},
		{input: "purple", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFace(t *testing.T) {
	tests := []struct {
		input   string
		want    Face
		wantErr bool
	}{
		{input: "0", want: Zero},
		{input: "9", want: Nine},
		{input: "skip", want: Skip},
		{input: "Draw Two", want: DrawTwo},
		{input: "draw_two", want: DrawTwo},
		{input: "wild", want: WildCard},
		{input: "Wild Draw Four", want: WildDrawFour},
		{input: "wild-draw-eight", want: WildDrawEight},
		{input: "10", wantErr: true},
		{input: "joker", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFace(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFacePredicates(t *testing.T) {
	assert.True(t, WildCard.IsWild())
	assert.True(t, WildDrawFour.IsWild())
	assert.True(t, WildDrawEight.IsWild())
	assert.False(t, DrawTwo.IsWild())
	assert.True(t, Seven.IsNumber())
	assert.True(t, Reverse.IsAction())
	assert.False(t, WildCard.IsAction())
	assert.Equal(t, "Draw Two", DrawTwo.String())
	assert.Equal(t, "Red Skip", NewCard(1, Red, Skip).String())
	assert.Equal(t, "Wild Draw Four", NewCard(2, Wild, WildDrawFour).String())
}

func TestPileHelpers(t *testing.T) {
	cards := []Card{NewCard(1, Red, Five), NewCard(2, Blue, Five), NewCard(3, Red, Skip)}

	assert.Equal(t, 1, IndexOf(cards, 2))
	assert.Equal(t, -1, IndexOf(cards, 42))
	assert.True(t, HasColor(cards, Red, 1))
	assert.False(t, HasColor(cards, Blue, 2))
	assert.Equal(t, 2, ColorCounts(cards)[Red])

	clone := Clone(cards)
	clone[0].Color = Yellow
	assert.Equal(t, Red, cards[0].Color)
	assert.NotNil(t, Clone(nil))
}
