package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesSpelling(t *testing.T) {
	// NFC composed vs decomposed spellings of "é" must compare equal.
	composed := New("café")
	decomposed := New("café")

	assert.Equal(t, composed, decomposed)
	assert.Equal(t, "café", composed.Name())
}

func TestNew_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, New("schema:app"), New("  schema:app "))
}

func TestFlavors_DoNotCollide(t *testing.T) {
	explicit := New("postgresql")
	implicit := ForImplementor("postgresql")

	require.NotEqual(t, explicit, implicit)
	assert.False(t, explicit.IsImplementor())
	assert.True(t, implicit.IsImplementor())
	assert.Equal(t, explicit.Name(), implicit.Name())
}

func TestString_DistinguishesFlavors(t *testing.T) {
	assert.Equal(t, "table:users", New("table:users").String())
	assert.Equal(t, "implementor:postgresql", ForImplementor("postgresql").String())
}

func TestTag_UsableAsMapKey(t *testing.T) {
	set := map[Tag]struct{}{
		New("x"):            {},
		ForImplementor("x"): {},
	}
	require.Len(t, set, 2)

	_, ok := set[New("x")]
	assert.True(t, ok)
}

func TestSorted(t *testing.T) {
	got := Sorted([]Tag{New("b"), ForImplementor("a"), New("a")})
	assert.Equal(t, []string{"a", "b", "implementor:a"}, got)
}
