package feedback

import (
	"errors"
	"slices"
	"strconv"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// entry is the registry record of one field. Guarded by Engine.mu.
type entry struct {
	name       string
	groups     []Group
	identities []string
	required   bool

	snapshot  validity.State
	results   []Result
	validated bool
	epoch     uint64
	rev       uint64
	err       error
}

func newEntry(name string, groups []Group) *entry {
	en := &entry{name: name}
	en.setGroups(groups)
	return en
}

func (en *entry) setGroups(groups []Group) {
	en.groups = groups
	en.identities = identities(groups)
	en.required = slices.ContainsFunc(groups, func(g Group) bool { return g.RequireValidation })
}

// replace swaps the rule tree. Results whose key and rule identity survive
// are kept, pending ones included, so their async resolutions still merge.
// A changed tree advances rev, which voids passes evaluated against the old
// one. It reports whether the tree changed.
func (en *entry) replace(groups []Group) bool {
	ids := identities(groups)
	if slices.Equal(ids, en.identities) {
		en.setGroups(groups)
		return false
	}

	alive := make(map[string]struct{})
	walkRules(groups, func(key string, r Rule) {
		alive[key+"\x00"+r.identity()] = struct{}{}
	})

	kept := en.results[:0:0]
	for _, r := range en.results {
		if _, ok := alive[r.Key+"\x00"+r.identity]; ok {
			kept = append(kept, r)
		}
	}
	en.results = kept
	en.rev++
	en.setGroups(groups)
	return true
}

// pending returns the index of the unresolved result for key and identity.
// found is false when no result carries them at all.
func (en *entry) pending(key, identity string) (i int, found bool) {
	i = -1
	for j, r := range en.results {
		if r.Key != key || r.identity != identity {
			continue
		}
		found = true
		if r.Status == StatusPending {
			return j, true
		}
	}
	return i, found
}

// reset clears everything a pass produced and advances the epoch.
func (en *entry) reset() {
	en.snapshot = validity.State{}
	en.results = nil
	en.validated = false
	en.err = nil
	en.epoch++
}

func (en *entry) state() FieldState {
	return FieldState{
		Name:              en.name,
		Snapshot:          en.snapshot,
		Results:           slices.Clone(en.results),
		Validated:         en.validated,
		RequireValidation: en.required,
		Pending:           pendingCount(en.results),
		Epoch:             en.epoch,
		Err:               en.err,
	}
}

// addErr records a failure without dropping earlier ones.
func (en *entry) addErr(err error) {
	en.err = errors.Join(en.err, err)
}

// walkRules visits rules with the result key evaluation assigns them.
func walkRules(groups []Group, fn func(key string, r Rule)) {
	var walk func(g Group, path string)
	walk = func(g Group, path string) {
		for i, n := range g.Nodes {
			key := path + "." + strconv.Itoa(i)
			switch n := n.(type) {
			case Rule:
				if n.Key != "" {
					fn(n.Key, n)
				} else {
					fn(key, n)
				}
			case Group:
				walk(n, key)
			}
		}
	}
	for i, g := range groups {
		walk(g, strconv.Itoa(i))
	}
}

// normalizeGroups checks the shape of groups declared for field and fills in
// the top-level Field names.
func normalizeGroups(field string, groups []Group) ([]Group, error) {
	if field == "" {
		return nil, ErrEmptyFieldName
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		if g.Field == "" {
			g.Field = field
		}
		if err := g.validate(field, false); err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}
