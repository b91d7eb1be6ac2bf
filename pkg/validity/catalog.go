package validity

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Args are substituted into messages as {name} placeholders.
type Args map[string]string

// Catalog holds validation messages per language and constraint.
// It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	tags     []language.Tag
	matcher  language.Matcher
	messages map[language.Tag]map[Constraint]string
}

// NewCatalog creates an empty catalog whose fallback language is fallback.
func NewCatalog(fallback language.Tag) *Catalog {
	c := &Catalog{messages: make(map[language.Tag]map[Constraint]string)}
	c.tags = []language.Tag{fallback}
	c.messages[fallback] = make(map[Constraint]string)
	c.matcher = language.NewMatcher(c.tags)
	return c
}

// DefaultCatalog returns the built-in catalog (English fallback, French).
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(bytes.NewReader(defaultMessages), language.English)
		if err != nil {
			panic(fmt.Errorf("validity: embedded messages: %w", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a YAML document mapping language tags to constraint
// messages:
//
//	en:
//	  valueMissing: "Please fill out this field."
//	  tooShort: "At least {min} characters."
func LoadCatalog(r io.Reader, fallback language.Tag) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseCatalog, err)
	}

	c := NewCatalog(fallback)
	for lang, msgs := range raw {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidLanguage, lang, err)
		}
		set := make(map[Constraint]string, len(msgs))
		for name, text := range msgs {
			cst, err := ParseConstraint(name)
			if err != nil {
				return nil, fmt.Errorf("language %s: %w", lang, err)
			}
			set[cst] = text
		}
		c.Add(tag, set)
	}
	return c, nil
}

// Add merges messages for lang into the catalog.
func (c *Catalog) Add(lang language.Tag, msgs map[Constraint]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.messages[lang]
	if !ok {
		existing = make(map[Constraint]string, len(msgs))
		c.messages[lang] = existing
		c.tags = append(c.tags, lang)
		c.matcher = language.NewMatcher(c.tags)
	}
	for k, v := range msgs {
		existing[k] = v
	}
}

// Languages returns the catalog languages, fallback first.
func (c *Catalog) Languages() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Message returns the text for cst in the best match for lang (an
// Accept-Language style string). Missing translations fall back to the
// fallback language, then to the constraint name.
func (c *Catalog) Message(lang string, cst Constraint, args Args) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, idx := language.MatchStrings(c.matcher, lang)
	text, ok := c.messages[c.tags[idx]][cst]
	if !ok {
		text, ok = c.messages[c.tags[0]][cst]
	}
	if !ok {
		return string(cst)
	}

	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
