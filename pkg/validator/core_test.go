package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formfeedback/pkg/validator"
)

func TestCombinators(t *testing.T) {
	t.Parallel()

	yes := func(string) bool { return true }
	no := func(string) bool { return false }

	t.Run("not inverts", func(t *testing.T) {
		assert.False(t, validator.Not(yes)("x"))
		assert.True(t, validator.Not(no)("x"))
	})

	t.Run("all", func(t *testing.T) {
		assert.True(t, validator.All()("x"))
		assert.True(t, validator.All(yes, yes)("x"))
		assert.False(t, validator.All(yes, no)("x"))
	})

	t.Run("any", func(t *testing.T) {
		assert.False(t, validator.Any()("x"))
		assert.True(t, validator.Any(no, yes)("x"))
		assert.False(t, validator.Any(no, no)("x"))
	})

	t.Run("equals reads the other value lazily", func(t *testing.T) {
		other := "secret"
		p := validator.Equals(func() string { return other })
		assert.True(t, p("secret"))
		other = "changed"
		assert.False(t, p("secret"))
	})

	t.Run("one of", func(t *testing.T) {
		p := validator.OneOf("john", "paul")
		assert.True(t, p("paul"))
		assert.False(t, p("ringo"))
	})
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Required()("  John  "))
	assert.False(t, validator.Required()("   "))
	assert.True(t, validator.NonEmpty()("   "))
	assert.False(t, validator.NonEmpty()(""))

	assert.True(t, validator.MinLen(3)("abc"))
	assert.False(t, validator.MinLen(3)("ab"))
	assert.True(t, validator.MinLen(3)("héé"), "counts characters, not bytes")
	assert.True(t, validator.MaxLen(3)("abc"))
	assert.False(t, validator.MaxLen(3)("abcd"))
}
