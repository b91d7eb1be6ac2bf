package validity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat := validity.DefaultCatalog()
	require.NotNil(t, cat)
	assert.Same(t, cat, validity.DefaultCatalog())

	langs := cat.Languages()
	require.NotEmpty(t, langs)
	assert.Equal(t, language.English, langs[0])

	for _, c := range validity.AllConstraints() {
		assert.NotEqual(t, string(c), cat.Message("en", c, nil), "missing english text for %s", c)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("matches languages and falls back", func(t *testing.T) {
		doc := `
en:
  valueMissing: "Required"
  tooShort: "Min {min}"
de:
  valueMissing: "Pflichtfeld"
`
		cat, err := validity.LoadCatalog(strings.NewReader(doc), language.English)
		require.NoError(t, err)

		assert.Equal(t, "Pflichtfeld", cat.Message("de-AT", validity.ValueMissing, nil))
		assert.Equal(t, "Min 3", cat.Message("de", validity.TooShort, validity.Args{"min": "3"}))
		assert.Equal(t, "Required", cat.Message("ja", validity.ValueMissing, nil))
		assert.Equal(t, "Required", cat.Message("", validity.ValueMissing, nil))
		assert.Equal(t, "badInput", cat.Message("en", validity.BadInput, nil))
	})

	t.Run("unknown constraint", func(t *testing.T) {
		_, err := validity.LoadCatalog(strings.NewReader("en:\n  nope: x\n"), language.English)
		assert.ErrorIs(t, err, validity.ErrUnknownConstraint)
	})

	t.Run("invalid language", func(t *testing.T) {
		_, err := validity.LoadCatalog(strings.NewReader("'not a tag!':\n  valueMissing: x\n"), language.English)
		assert.ErrorIs(t, err, validity.ErrInvalidLanguage)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := validity.LoadCatalog(strings.NewReader("en: [unclosed"), language.English)
		assert.ErrorIs(t, err, validity.ErrFailedToParseCatalog)
	})

	t.Run("add merges", func(t *testing.T) {
		cat := validity.NewCatalog(language.English)
		cat.Add(language.English, map[validity.Constraint]string{validity.ValueMissing: "a"})
		cat.Add(language.English, map[validity.Constraint]string{validity.TooLong: "b"})
		assert.Equal(t, "a", cat.Message("en", validity.ValueMissing, nil))
		assert.Equal(t, "b", cat.Message("en", validity.TooLong, nil))
		assert.Len(t, cat.Languages(), 1)
	})
}
