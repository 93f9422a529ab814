package calculator

// MaxVariables bounds the number of names the variable table holds per
// evaluation, builtins included.
const MaxVariables = 100

type variable struct {
	name  string
	value float64
}

// defaults are the builtin variables, in insertion order.
var defaults = [...]variable{
	{"pi", 3.14159265358979323846},
	{"e", 2.71828182845904523536},
}

// varTable is the call-scoped variable table. It is rebuilt from the
// builtins at the start of every evaluation. Lookup scans in definition
// order and returns the first match, so builtins cannot be shadowed.
type varTable struct {
	vars []variable
}

func (t *varTable) reset() {
	t.vars = append(t.vars[:0], defaults[:]...)
}

// define appends a name to the table. It reports false when the table is
// full; the name is dropped and resolves as undefined.
func (t *varTable) define(name string, value float64) bool {
	if len(t.vars) >= MaxVariables {
		return false
	}
	t.vars = append(t.vars, variable{name, value})
	return true
}

func (t *varTable) lookup(name string) (float64, bool) {
	for _, v := range t.vars {
		if v.name == name {
			return v.value, true
		}
	}
	return 0, false
}
