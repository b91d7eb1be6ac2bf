package validity

// Source supplies the current snapshot of a field on demand.
type Source interface {
	Snapshot(name string) (State, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) (State, bool)

func (f SourceFunc) Snapshot(name string) (State, bool) {
	return f(name)
}

// Snapshots is a map-backed Source keyed by field name.
type Snapshots map[string]State

// Snapshot returns the stored state, filling Name from the key when empty.
func (s Snapshots) Snapshot(name string) (State, bool) {
	st, ok := s[name]
	if ok && st.Name == "" {
		st.Name = name
	}
	return st, ok
}

// Set stores st under st.Name.
func (s Snapshots) Set(st State) {
	s[st.Name] = st
}
