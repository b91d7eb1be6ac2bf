package validity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no flags is valid", func(t *testing.T) {
		st := validity.New("username", "john")
		assert.True(t, st.Valid)
		assert.Empty(t, st.Violations())
	})

	t.Run("each flag is reported by Has", func(t *testing.T) {
		for _, c := range validity.AllConstraints() {
			st := validity.New("f", "v", c)
			assert.False(t, st.Valid, c)
			assert.True(t, st.Has(c), c)
			assert.Equal(t, []validity.Constraint{c}, st.Violations())
			for _, other := range validity.AllConstraints() {
				if other != c {
					assert.False(t, st.Has(other), "%s raised %s", c, other)
				}
			}
		}
	})

	t.Run("unknown constraint is never raised", func(t *testing.T) {
		st := validity.New("f", "v", validity.TooShort)
		assert.False(t, st.Has("bogus"))
	})
}

func TestParseConstraint(t *testing.T) {
	t.Parallel()

	c, err := validity.ParseConstraint("patternMismatch")
	require.NoError(t, err)
	assert.Equal(t, validity.PatternMismatch, c)

	_, err = validity.ParseConstraint("nope")
	assert.ErrorIs(t, err, validity.ErrUnknownConstraint)
	_, err = validity.ParseConstraint("*")
	assert.ErrorIs(t, err, validity.ErrUnknownConstraint)
}

func TestWithCustomError(t *testing.T) {
	t.Parallel()

	st := validity.New("f", "v").WithCustomError("taken")
	assert.True(t, st.CustomError)
	assert.False(t, st.Valid)
	assert.Equal(t, "taken", st.Message)

	st = st.WithCustomError("")
	assert.False(t, st.CustomError)
	assert.True(t, st.Valid)
	assert.Empty(t, st.Message)
}

func TestSnapshots(t *testing.T) {
	t.Parallel()

	snaps := validity.Snapshots{}
	snaps.Set(validity.New("a", "1"))
	snaps["b"] = validity.State{Value: "2", Valid: true}

	st, ok := snaps.Snapshot("a")
	require.True(t, ok)
	assert.Equal(t, "1", st.Value)

	st, ok = snaps.Snapshot("b")
	require.True(t, ok)
	assert.Equal(t, "b", st.Name)

	_, ok = snaps.Snapshot("c")
	assert.False(t, ok)

	var src validity.Source = validity.SourceFunc(func(name string) (validity.State, bool) {
		return validity.New(name, "x"), true
	})
	st, ok = src.Snapshot("z")
	require.True(t, ok)
	assert.Equal(t, "z", st.Name)
}
