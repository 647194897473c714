// Package fuzzy implements a small rule-based fuzzy inference engine:
// linguistic variables built from shoulder/triangle membership sets,
// AND-combined rule antecedents, and mean-of-maxima (MaxAv)
// defuzzification. It is used by the weapon layer to score how
// desirable each weapon is for the current combat situation.
package fuzzy

// Term is anything that can report a degree of membership, either a
// single set or a composite expression over sets.
type Term interface {
	Degree() float64
}

// Set is one membership function over a crisp input domain. A Set also
// stores its current degree of membership so it can act as a rule
// consequence accumulator.
type Set interface {
	Term
	Membership(x float64) float64
	Representative() float64
	SetDegree(d float64)
	ORDegree(d float64)
	ClearDegree()
}

type baseSet struct {
	dom float64
	rep float64
}

func (s *baseSet) Degree() float64     { return s.dom }
func (s *baseSet) SetDegree(d float64) { s.dom = clamp01(d) }
func (s *baseSet) ClearDegree()        { s.dom = 0 }

// ORDegree keeps the maximum of the stored and offered degree. Rules
// firing into the same consequence set accumulate by max, not by sum.
func (s *baseSet) ORDegree(d float64) {
	if d > s.dom {
		s.dom = clamp01(d)
	}
}

func (s *baseSet) Representative() float64 { return s.rep }

// LeftShoulder is fully true at and below its peak and ramps down to
// zero at its right edge.
type LeftShoulder struct {
	baseSet
	peak  float64
	right float64
}

// NewLeftShoulder builds a left-shoulder set over [left, right] with
// full membership up to peak.
func NewLeftShoulder(left, peak, right float64) *LeftShoulder {
	s := &LeftShoulder{peak: peak, right: right}
	s.rep = (left + peak) / 2
	return s
}

func (s *LeftShoulder) Membership(x float64) float64 {
	switch {
	case x <= s.peak:
		return 1
	case x >= s.right:
		return 0
	default:
		return (s.right - x) / (s.right - s.peak)
	}
}

// Triangle peaks at its midpoint and is zero outside [left, right].
type Triangle struct {
	baseSet
	left  float64
	peak  float64
	right float64
}

// NewTriangle builds a triangular set with the given corners.
func NewTriangle(left, peak, right float64) *Triangle {
	s := &Triangle{left: left, peak: peak, right: right}
	s.rep = peak
	return s
}

func (s *Triangle) Membership(x float64) float64 {
	switch {
	case x <= s.left || x >= s.right:
		return 0
	case x == s.peak:
		return 1
	case x < s.peak:
		return (x - s.left) / (s.peak - s.left)
	default:
		return (s.right - x) / (s.right - s.peak)
	}
}

// RightShoulder ramps up from its left edge and is fully true at and
// beyond its peak.
type RightShoulder struct {
	baseSet
	left float64
	peak float64
}

// NewRightShoulder builds a right-shoulder set over [left, right] with
// full membership from peak upward.
func NewRightShoulder(left, peak, right float64) *RightShoulder {
	s := &RightShoulder{left: left, peak: peak}
	s.rep = (peak + right) / 2
	return s
}

func (s *RightShoulder) Membership(x float64) float64 {
	switch {
	case x >= s.peak:
		return 1
	case x <= s.left:
		return 0
	default:
		return (x - s.left) / (s.peak - s.left)
	}
}

// and is the intersection of its operand terms (minimum degree).
type and struct {
	terms []Term
}

// And combines terms so the antecedent fires with the weakest degree.
func And(terms ...Term) Term {
	return &and{terms: terms}
}

func (a *and) Degree() float64 {
	if len(a.terms) == 0 {
		return 0
	}
	min := a.terms[0].Degree()
	for _, t := range a.terms[1:] {
		if d := t.Degree(); d < min {
			min = d
		}
	}
	return min
}

// rule maps an antecedent expression onto a consequence set.
type rule struct {
	antecedent  Term
	consequence Set
}

// Variable is a named linguistic variable: a collection of sets over
// one crisp input or output domain.
type Variable struct {
	name string
	sets []Set
}

// Add registers a set with the variable and returns it for rule wiring.
func (v *Variable) Add(s Set) Set {
	v.sets = append(v.sets, s)
	return s
}

// Fuzzify writes the degree of membership of x into every set.
func (v *Variable) Fuzzify(x float64) {
	for _, s := range v.sets {
		s.SetDegree(s.Membership(x))
	}
}

// defuzzifyMaxAv is the mean-of-representatives weighted by degree.
func (v *Variable) defuzzifyMaxAv() float64 {
	var num, den float64
	for _, s := range v.sets {
		num += s.Representative() * s.Degree()
		den += s.Degree()
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Module owns a set of variables and the rules connecting them.
type Module struct {
	vars  map[string]*Variable
	rules []rule
}

// NewModule creates an empty fuzzy module.
func NewModule() *Module {
	return &Module{vars: make(map[string]*Variable)}
}

// AddVariable creates (or returns the existing) variable with the
// given name.
func (m *Module) AddVariable(name string) *Variable {
	if v, ok := m.vars[name]; ok {
		return v
	}
	v := &Variable{name: name}
	m.vars[name] = v
	return v
}

// AddRule registers "IF antecedent THEN consequence".
func (m *Module) AddRule(antecedent Term, consequence Set) {
	m.rules = append(m.rules, rule{antecedent: antecedent, consequence: consequence})
}

// Fuzzify feeds a crisp value into the named variable. Unknown names
// are ignored; a missing input simply contributes nothing.
func (m *Module) Fuzzify(name string, x float64) {
	if v, ok := m.vars[name]; ok {
		v.Fuzzify(x)
	}
}

// Defuzzify runs all rules and collapses the named output variable to
// a crisp value via MaxAv. Returns 0 for an unknown variable.
func (m *Module) Defuzzify(name string) float64 {
	v, ok := m.vars[name]
	if !ok {
		return 0
	}
	for _, s := range v.sets {
		s.ClearDegree()
	}
	for _, r := range m.rules {
		r.consequence.ORDegree(r.antecedent.Degree())
	}
	return v.defuzzifyMaxAv()
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
