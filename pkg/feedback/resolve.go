package feedback

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// asyncJob is a resolver to start once the synchronous results are stored.
type asyncJob struct {
	index    int
	key      string
	identity string
	value    string
	fn       Resolver
}

// evaluation is the synchronous outcome of one field's rule groups.
type evaluation struct {
	results []Result
	jobs    []asyncJob
	err     error
}

type evaluator struct {
	field   string
	state   validity.State
	results []Result
	jobs    []asyncJob
	err     error
}

// evaluate walks groups in declaration order against one snapshot. It calls
// synchronous predicates only; resolvers are returned as jobs.
func evaluate(field string, state validity.State, groups []Group, def StopPolicy) evaluation {
	ev := &evaluator{field: field, state: state}
	for i, g := range groups {
		if ev.err != nil {
			break
		}
		ev.group(g, strconv.Itoa(i), def)
	}
	if ev.err != nil {
		// A failed field starts no resolver.
		for _, j := range ev.jobs {
			ev.results[j.index].Status = StatusResolved
		}
		ev.jobs = nil
	}
	return evaluation{results: ev.results, jobs: ev.jobs, err: ev.err}
}

func (ev *evaluator) group(g Group, path string, stop StopPolicy) {
	if g.Stop != StopDefault {
		stop = g.Stop
	}
	start := len(ev.results)
	explicit := false

	for i, n := range g.Nodes {
		if ev.err != nil {
			return
		}
		key := path + "." + strconv.Itoa(i)
		switch n := n.(type) {
		case Rule:
			if n.Kind != KindWhenValid && stop.halts(ev.results[start:]) {
				continue
			}
			ev.rule(n, key, &explicit)
		case Group:
			if stop.halts(ev.results[start:]) {
				continue
			}
			ev.group(n, key, stop)
		}
	}
}

func (ev *evaluator) rule(r Rule, key string, explicit *bool) {
	if r.Key != "" {
		key = r.Key
	}
	res := Result{
		Key:      key,
		Kind:     r.Kind,
		Message:  r.Message,
		identity: r.identity(),
	}

	if r.Kind == KindWhenValid {
		res.Show = ev.state.Valid
		ev.results = append(ev.results, res)
		return
	}

	switch r.Matcher.kind {
	case matchConstraint:
		res.Show = ev.state.Has(r.Matcher.constraint)
		if res.Show {
			*explicit = true
		}
	case matchWildcard:
		res.Show = !ev.state.Valid && !*explicit
		if res.Message == "" {
			res.Message = ev.state.Message
		}
	case matchPredicate:
		show, err := callPredicate(r.Matcher.predicate, ev.state.Value)
		if err != nil {
			res.Err = &RulePredicateError{Field: ev.field, Rule: key, Err: err}
			ev.err = res.Err
		} else {
			res.Show = show
		}
	case matchAsync:
		res.Status = StatusPending
		ev.jobs = append(ev.jobs, asyncJob{
			index:    len(ev.results),
			key:      key,
			identity: res.identity,
			value:    ev.state.Value,
			fn:       r.Matcher.resolver,
		})
	}

	ev.results = append(ev.results, res)
}

var errPredicatePanic = errors.New("predicate panicked")

func callPredicate(fn func(string) bool, value string) (show bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPredicatePanic, r)
		}
	}()
	return fn(value), nil
}

func pendingCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusPending {
			n++
		}
	}
	return n
}
