package scale

// Selection is the user's current pick of notes and, optionally, a root to
// pin matches to. Methods return a new value and leave the receiver as is.
type Selection struct {
	notes   PitchClassSet
	root    int
	hasRoot bool
}

func NewSelection(notes ...int) Selection {
	return Selection{notes: NewPitchClassSet(notes...)}
}

func (s Selection) ToggleNote(pc int) Selection {
	s.notes = s.notes.Toggle(pc)
	return s
}

// SetRoot pins the root; out of range values clear it.
func (s Selection) SetRoot(pc int) Selection {
	if !valid(pc) {
		return s.ClearRoot()
	}
	s.root = pc
	s.hasRoot = true
	return s
}

func (s Selection) ClearRoot() Selection {
	s.root = 0
	s.hasRoot = false
	return s
}

func (s Selection) Root() (int, bool) {
	return s.root, s.hasRoot
}

func (s Selection) Notes() []int {
	return s.notes.Slice()
}
