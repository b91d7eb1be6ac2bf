package formfeedback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formfeedback"
	"github.com/dmitrymomot/formfeedback/pkg/feedback"
	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	e := formfeedback.NewValidationError()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "validation failed", e.Error())

	e.Add("email", "Enter a valid e-mail")
	e.Add("email", "Too long")
	e.Add("age", "You must be an adult")

	assert.False(t, e.IsEmpty())
	assert.True(t, e.Has("email"))
	assert.False(t, e.Has("name"))
	assert.Equal(t, "Enter a valid e-mail", e.Get("email"))
	assert.Equal(t, "validation error: age: You must be an adult, email: Enter a valid e-mail", e.Error())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	e := feedback.New()
	require.NoError(t, e.Register("email", feedback.For("email",
		feedback.Error(feedback.Constraint(validity.TypeMismatch), "Enter a valid e-mail"),
		feedback.WhenValid("ok"),
	)))
	require.NoError(t, e.Register("name", feedback.For("name",
		feedback.Warning(feedback.Func("short", func(v string) bool { return len(v) < 3 }), "Short name"),
	)))
	require.NoError(t, e.Register("terms", feedback.For("terms", feedback.WhenValid("ok")).Required()))

	snaps := validity.Snapshots{}
	snaps.Set(validity.New("email", "nope", validity.TypeMismatch))
	snaps.Set(validity.New("name", "Al"))

	_, err := e.Validate(context.Background(), snaps, "email", "name")
	require.NoError(t, err)

	err = formfeedback.Check(e)
	require.Error(t, err)

	var verr formfeedback.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Enter a valid e-mail"}, verr["email"])
	assert.False(t, verr.Has("name"), "warnings do not block")
	assert.Equal(t, "not validated", verr.Get("terms"))

	snaps.Set(validity.New("email", "a@b.co"))
	snaps.Set(validity.New("terms", "on"))
	_, err = e.Validate(context.Background(), snaps)
	require.NoError(t, err)
	assert.NoError(t, formfeedback.Check(e))
}
