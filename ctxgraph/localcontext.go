package ctxgraph

import "github.com/ralakus/modlang/lang"

// TypeExpectationKind discriminates how a pending type should be
// checked against the expectation on top of the stack: it must match
// (Require), it may optionally match (Allow), or it must not match
// (Deny).
type TypeExpectationKind uint8

const (
	ExpectRequire TypeExpectationKind = iota
	ExpectAllow
	ExpectDeny
)

// TypeExpectation is one entry of a LocalContext's expectation stack.
type TypeExpectation struct {
	Kind TypeExpectationKind
	Type GlobalKey
}

// LocalContext is per-function-body scratch state: a stack of local
// variable scopes and a stack of type expectations used while lowering
// expressions. Exactly zero or one LocalContext exists on a Context at
// a time.
type LocalContext struct {
	scopes       []BindingTable
	expectations []TypeExpectation
}

// NewLocalContext returns an empty LocalContext with one root scope.
func NewLocalContext() *LocalContext {
	return &LocalContext{scopes: []BindingTable{newBindingTable()}}
}

// PushScope opens a new nested variable scope.
func (lc *LocalContext) PushScope() {
	lc.scopes = append(lc.scopes, newBindingTable())
}

// PopScope closes the innermost variable scope. Popping the last
// remaining scope is a fatal internal error.
func (lc *LocalContext) PopScope() {
	if len(lc.scopes) <= 1 {
		panic(fatalf("ctxgraph: cannot pop the root local scope"))
	}
	lc.scopes = lc.scopes[:len(lc.scopes)-1]
}

// Bind declares name in the innermost scope, returning false if it is
// already bound there (local shadowing across nested scopes is
// permitted; shadowing within one scope is not).
func (lc *LocalContext) Bind(name lang.Identifier, binding Binding) bool {
	top := lc.scopes[len(lc.scopes)-1]
	if _, exists := top[name.String()]; exists {
		return false
	}
	top[name.String()] = binding
	return true
}

// Lookup searches scopes from innermost to outermost.
func (lc *LocalContext) Lookup(name string) (Binding, bool) {
	for i := len(lc.scopes) - 1; i >= 0; i-- {
		if b, ok := lc.scopes[i][name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// PushExpectation adds a type expectation for the expression about to
// be lowered.
func (lc *LocalContext) PushExpectation(e TypeExpectation) {
	lc.expectations = append(lc.expectations, e)
}

// PopExpectation removes and returns the current type expectation. It
// is a fatal internal error to pop with none pending.
func (lc *LocalContext) PopExpectation() TypeExpectation {
	if len(lc.expectations) == 0 {
		panic(fatalf("ctxgraph: no type expectation to pop"))
	}
	e := lc.expectations[len(lc.expectations)-1]
	lc.expectations = lc.expectations[:len(lc.expectations)-1]
	return e
}

// CurrentExpectation returns the innermost pending expectation, if any.
func (lc *LocalContext) CurrentExpectation() (TypeExpectation, bool) {
	if len(lc.expectations) == 0 {
		return TypeExpectation{}, false
	}
	return lc.expectations[len(lc.expectations)-1], true
}
