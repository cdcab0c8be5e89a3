package document

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{
		ID:       t.ID,
		TreeName: clonePtr(t.TreeName),
		Persons:  clonePersons(t.Persons),
	}
}

// Clone returns a deep copy of the person and its subtree.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	return &Person{
		ID:       p.ID,
		Name:     clonePtr(p.Name),
		Children: p.Children.Clone(),
	}
}

// Clone returns a deep copy of the container.
func (c *Children) Clone() *Children {
	if c == nil {
		return nil
	}
	return &Children{Persons: clonePersons(c.Persons)}
}

func clonePersons(ps []*Person) []*Person {
	if ps == nil {
		return nil
	}
	out := make([]*Person, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
