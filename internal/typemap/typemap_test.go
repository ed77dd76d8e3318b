package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tada/pljava-sub016/internal/tiebreak"
)

func TestResolve_TargetTypeDecides(t *testing.T) {
	winner, err := Resolve([]Candidate{
		{Source: "java.lang.String", Target: "varchar"},
		{Source: "java.lang.String", Target: "text"},
	})
	require.NoError(t, err)
	assert.Equal(t, "text", winner.Target)
}

func TestResolve_SourceTypeBreaksTargetTie(t *testing.T) {
	winner, err := Resolve([]Candidate{
		{Source: "java.sql.Timestamp", Target: "timestamptz"},
		{Source: "java.time.OffsetDateTime", Target: "timestamptz"},
	})
	require.NoError(t, err)
	assert.Equal(t, "java.sql.Timestamp", winner.Source)
}

func TestResolve_InputOrderIndependent(t *testing.T) {
	candidates := []Candidate{
		{Source: "s2", Target: "t2"},
		{Source: "s1", Target: "t1"},
		{Source: "s3", Target: "t1"},
	}
	reversed := []Candidate{candidates[2], candidates[1], candidates[0]}

	a, err := Resolve(candidates)
	require.NoError(t, err)
	b, err := Resolve(reversed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResolve_GenuineTieIsInternalFailure(t *testing.T) {
	_, err := Resolve([]Candidate{
		{Source: "java.lang.String", Target: "text"},
		{Source: "java.lang.String", Target: "text"},
	})
	require.Error(t, err)
	assert.True(t, tiebreak.IsDuplicate(err))
}

func TestResolve_EmptyIsError(t *testing.T) {
	_, err := Resolve(nil)
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	r, err := Compare(
		Candidate{Source: "a", Target: "int4"},
		Candidate{Source: "a", Target: "int8"},
	)
	require.NoError(t, err)
	assert.Negative(t, r)
}
