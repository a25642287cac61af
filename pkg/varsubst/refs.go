package varsubst

// Reference describes one variable reference found in an input.
type Reference struct {
	// Name is the variable name.
	Name string
	// Position is the byte offset of the reference's $.
	Position int
	// Braced is true for ${NAME}, false for $NAME.
	Braced bool
}

// References returns every reference in input in scan order, using the
// engine's syntax options. Structural errors are reported exactly as
// Substitute reports them. Missing values are never an error here.
func (e *Engine) References(input string) ([]Reference, error) {
	if e.plain(input) {
		return nil, nil
	}

	var refs []Reference
	s := scanner{
		opts:     &e.opts,
		input:    input,
		visit:    func(r Reference) { refs = append(refs, r) },
		listOnly: true,
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Names returns the unique variable names referenced in input, in the order
// they first appear.
//
// Example:
//
//	names, _ := NewEngine().Names("${greeting}, ${name}! ${name}")
//	// names: ["greeting", "name"]
func (e *Engine) Names(input string) ([]string, error) {
	refs, err := e.References(input)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	return names, nil
}
