package selector

import "fmt"

// Specificity is the (ids, classes, types) triple of a selector.
type Specificity [3]int

func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{s[0] + o[0], s[1] + o[1], s[2] + o[2]}
}

// Value packs s into one comparable integer, each component saturating at
// 1023.
func (s Specificity) Value() int {
	v := 0
	for _, c := range s {
		v = v<<10 | min(c, 1023)
	}
	return v
}

func (s Specificity) Less(o Specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

func maxSpecificity(sels []Selector) Specificity {
	var m Specificity
	for _, s := range sels {
		if sp := s.Specificity(); m.Less(sp) {
			m = sp
		}
	}
	return m
}

func (*Universal) Specificity() Specificity { return Specificity{} }
func (*Type) Specificity() Specificity      { return Specificity{0, 0, 1} }
func (*Class) Specificity() Specificity     { return Specificity{0, 1, 0} }
func (*ID) Specificity() Specificity        { return Specificity{1, 0, 0} }
func (*Attribute) Specificity() Specificity { return Specificity{0, 1, 0} }

func (s *Pseudo) Specificity() Specificity {
	switch s.Name {
	case "where":
		return Specificity{}
	case "is", "matches", "not", "has", "global":
		return maxSpecificity(s.Args)
	}
	sp := Specificity{0, 1, 0}
	if s.Of != nil {
		sp = sp.Add(s.Of.Specificity())
	}
	return sp
}

func (s *Compound) Specificity() Specificity {
	var sp Specificity
	for _, p := range s.Parts {
		sp = sp.Add(p.Specificity())
	}
	return sp
}

func (s *Complex) Specificity() Specificity {
	return s.Left.Specificity().Add(s.Right.Specificity())
}

func (s *Relative) Specificity() Specificity {
	return s.Sel.Specificity()
}

// Specificity of a list is that of its most specific item.
func (s *List) Specificity() Specificity {
	return maxSpecificity(s.Items)
}
