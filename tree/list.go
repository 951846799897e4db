package tree

// List is an ordered sequence of unlabeled structs. Like a Struct, a List
// is owned by exactly one parent field.
type List struct {
	elems []*Struct
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.elems)
}

// At returns the entry at index i, or nil when i is out of range.
func (l *List) At(i int) *Struct {
	if i < 0 || i >= len(l.elems) {
		return nil
	}

	return l.elems[i]
}

// Append creates a new struct with the given kind discriminant, appends it,
// and returns it for population.
func (l *List) Append(id uint32) *Struct {
	s := NewStruct(id)
	l.elems = append(l.elems, s)

	return s
}

// AppendStruct appends an existing struct. The list takes ownership.
func (l *List) AppendStruct(s *Struct) {
	l.elems = append(l.elems, s)
}

// Structs returns the underlying entries in order. The slice is shared;
// treat it as read-only.
func (l *List) Structs() []*Struct {
	return l.elems
}
