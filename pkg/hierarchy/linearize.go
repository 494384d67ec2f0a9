package hierarchy

// Linearize returns the C3 merge of the given bases' MROs followed by the
// bases list itself, i.e. the MRO a new class with these bases would get,
// minus the class itself.
func Linearize(bases ...*Class) ([]*Class, error) {
	sequences := make([][]*Class, 0, len(bases)+1)
	for _, base := range bases {
		sequences = append(sequences, base.MRO())
	}
	sequences = append(sequences, append([]*Class(nil), bases...))
	return merge(sequences)
}

func linearize(c *Class) ([]*Class, error) {
	rest, err := Linearize(c.bases...)
	if err != nil {
		return nil, err
	}
	return append([]*Class{c}, rest...), nil
}

func merge(sequences [][]*Class) ([]*Class, error) {
	var out []*Class
	for {
		sequences = dropEmpty(sequences)
		if len(sequences) == 0 {
			return out, nil
		}

		var head *Class
		for _, seq := range sequences {
			candidate := seq[0]
			if !inAnyTail(candidate, sequences) {
				head = candidate
				break
			}
		}
		if head == nil {
			return nil, ErrInconsistentHierarchy
		}

		out = append(out, head)
		for idx, seq := range sequences {
			if seq[0] == head {
				sequences[idx] = seq[1:]
			}
		}
	}
}

func dropEmpty(sequences [][]*Class) [][]*Class {
	out := sequences[:0]
	for _, seq := range sequences {
		if len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

func inAnyTail(candidate *Class, sequences [][]*Class) bool {
	for _, seq := range sequences {
		for _, entry := range seq[1:] {
			if entry == candidate {
				return true
			}
		}
	}
	return false
}

// depthFirst walks bases left to right and keeps the last occurrence of every
// class, so a shared base lands after all classes that embed it.
func depthFirst(c *Class) []*Class {
	var order []*Class
	var visit func(*Class)
	visit = func(node *Class) {
		order = append(order, node)
		for _, base := range node.bases {
			visit(base)
		}
	}
	visit(c)

	last := make(map[*Class]int, len(order))
	for idx, node := range order {
		last[node] = idx
	}
	out := make([]*Class, 0, len(last))
	for idx, node := range order {
		if last[node] == idx {
			out = append(out, node)
		}
	}
	return out
}
