package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	p := Parse("When was [PERSON] born")
	assert.Equal(t, Pattern{Lit("when"), Lit("was"), Slot("PERSON"), Lit("born")}, p)
	assert.Equal(t, 1, p.Wildcards())
	assert.Equal(t, "when was [PERSON] born", p.String())
}

func TestParse_PercentMarker(t *testing.T) {
	p := Parse("calculate %")
	assert.Equal(t, Pattern{Lit("calculate"), Slot("")}, p)
	assert.Equal(t, "calculate %", p.String())

}

func TestParse_UnderscoreIsLiteral(t *testing.T) {
	p := Parse("the _ cat")
	assert.Equal(t, 0, p.Wildcards())

	_, ok := Match(p, Tokenize("the big fat cat"))
	assert.False(t, ok)
}

func TestParse_BracketsNeedBothEnds(t *testing.T) {
	p := Parse("[open close]")
	assert.Equal(t, 0, p.Wildcards())
	assert.Equal(t, Pattern{Lit("[open"), Lit("close]")}, p)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"when", "was", "albert", "einstein", "born"}, Tokenize("  When was Albert   Einstein born?  "))
	assert.Equal(t, []string{"calculate", "3", "+", "4"}, Tokenize("calculate 3 + 4"))
	assert.Empty(t, Tokenize("   "))
	assert.Empty(t, Tokenize("?!"))
}
