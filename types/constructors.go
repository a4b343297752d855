package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/typedef-go/typedef/internal/value"
)

// UnknownType is the singleton "no type observed yet" sentinel:
// recognize is always true, printed as "???", no children.
var UnknownType = &Type{
	Variant:     Unknown,
	Name:        "???",
	RecognizeFn: func(value.Value) bool { return true },
	FormatFn:    func(outer Styler, _ Inner) string { return outer("???") },
}

// InconsistentType is the singleton "no consistent type" sentinel
// used only inside loose candidate-type inference: recognize is
// always false, printed the same as Unknown.
var InconsistentType = &Type{
	Variant:     Inconsistent,
	Name:        "???",
	RecognizeFn: func(value.Value) bool { return false },
	FormatFn:    func(outer Styler, _ Inner) string { return outer("???") },
}

func noChildExtractor(value.Value) []value.Value { return nil }

// NullaryType builds a leaf type: a name and a membership predicate,
// no children.
func NullaryType(name string, recognize func(value.Value) bool) *Type {
	return &Type{
		Variant:     Nullary,
		Name:        name,
		RecognizeFn: recognize,
		FormatFn: func(outer Styler, _ Inner) string {
			return outer(localName(name))
		},
	}
}

// UnaryType returns a factory that closes over one sub-type, the
// parameterised-type constructor pattern of §4.2.
func UnaryType(name string, recognize func(value.Value) bool, extract Extractor) func(sub *Type) *Type {
	var build func(sub *Type) *Type
	build = func(sub *Type) *Type {
		t := &Type{
			Variant:     Unary,
			Name:        name,
			Keys:        []string{"$1"},
			Children:    map[string]Child{"$1": {Extractor: extract, SubType: sub}},
			RecognizeFn: recognize,
			FormatFn: func(outer Styler, inner Inner) string {
				return outer("(") + fmt.Sprintf("%s %s", outer(localName(name)), inner("$1", sub.Format(outer, inner))) + outer(")")
			},
		}
		t.rebuild1 = build
		return t
	}
	return build
}

// BinaryType returns a factory that closes over two sub-types.
func BinaryType(name string, recognize func(value.Value) bool, extract1, extract2 Extractor) func(a, b *Type) *Type {
	var build func(a, b *Type) *Type
	build = func(a, b *Type) *Type {
		t := &Type{
			Variant:  Binary,
			Name:     name,
			Keys:     []string{"$1", "$2"},
			Children: map[string]Child{"$1": {Extractor: extract1, SubType: a}, "$2": {Extractor: extract2, SubType: b}},
			RecognizeFn: func(v value.Value) bool {
				return recognize(v)
			},
			FormatFn: func(outer Styler, inner Inner) string {
				inside := fmt.Sprintf("%s %s %s",
					outer(localName(name)),
					inner("$1", a.Format(outer, inner)),
					inner("$2", b.Format(outer, inner)),
				)
				return outer("(") + inside + outer(")")
			},
		}
		t.rebuild2 = build
		return t
	}
	return build
}

// RecordType builds a membership test over an explicit field map: a
// value belongs if it is non-null and every declared key is present.
// Construction fails if fields carries a non-Type value (§7.6).
func RecordType(fields map[string]any) (*Type, error) {
	typed := make(map[string]*Type, len(fields))
	for k, v := range fields {
		t, ok := v.(*Type)
		if !ok {
			return nil, errors.Errorf("typedef: RecordType field %q is not a Type: %T", k, v)
		}
		typed[k] = t
	}
	keys := make([]string, 0, len(typed))
	for k := range typed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	children := make(map[string]Child, len(typed))
	for k, sub := range typed {
		key := k
		children[key] = Child{
			Extractor: func(v value.Value) []value.Value {
				m, ok := v.(map[string]any)
				if !ok {
					return nil
				}
				val, present := m[key]
				if !present {
					return nil
				}
				return []value.Value{val}
			},
			SubType: sub,
		}
	}

	t := &Type{
		Variant:  Record,
		Name:     "",
		Keys:     keys,
		Children: children,
		RecognizeFn: func(v value.Value) bool {
			if v == nil {
				return false
			}
			m, ok := v.(map[string]any)
			if !ok {
				return false
			}
			for _, k := range keys {
				if _, present := m[k]; !present {
					return false
				}
			}
			return true
		},
	}
	t.FormatFn = func(outer Styler, inner Inner) string {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, inner(k, typed[k].Format(outer, inner)))
		}
		return outer("{") + strings.Join(parts, outer(", ")) + outer("}")
	}
	return t, nil
}

// EnumType builds a membership test by deep structural equality
// against an explicit member list.
func EnumType(members []value.Value) *Type {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = value.ToString(m)
	}
	return &Type{
		Variant: Enum,
		Name:    strings.Join(names, " | "),
		RecognizeFn: func(v value.Value) bool {
			for _, m := range members {
				if value.DeepEqual(v, m) {
					return true
				}
			}
			return false
		},
		FormatFn: func(outer Styler, _ Inner) string {
			return outer(strings.Join(names, " | "))
		},
	}
}

// FunctionType builds a curried function type; types' last element is
// the return type. Multi-parameter signatures display as
// "((A, B, ...) -> R)"; a single parameter displays as "(A -> R)".
func FunctionType(types []*Type) *Type {
	if len(types) < 1 {
		panic("typedef: Function requires at least a return type")
	}
	params := types[:len(types)-1]
	ret := types[len(types)-1]

	keys := make([]string, len(types))
	children := make(map[string]Child, len(types))
	for i := range types {
		key := fmt.Sprintf("$%d", i+1)
		keys[i] = key
		children[key] = Child{Extractor: noChildExtractor, SubType: types[i]}
	}

	return &Type{
		Variant:  Function,
		Name:     "Function",
		Keys:     keys,
		Children: children,
		RecognizeFn: func(v value.Value) bool {
			return value.IsCallable(v)
		},
		FormatFn: func(outer Styler, inner Inner) string {
			parts := make([]string, len(params))
			for i, p := range params {
				parts[i] = inner(fmt.Sprintf("$%d", i+1), p.Format(outer, inner))
			}
			retStr := inner(fmt.Sprintf("$%d", len(types)), ret.Format(outer, inner))
			var sig string
			if len(parts) == 1 {
				sig = fmt.Sprintf("%s %s %s", parts[0], outer("->"), retStr)
			} else {
				sig = fmt.Sprintf("%s%s%s %s %s", outer("("), strings.Join(parts, outer(", ")), outer(")"), outer("->"), retStr)
			}
			return outer("(") + sig + outer(")")
		},
	}
}

// TypeVariable builds a display-only type variable: recognize is
// always true, no children.
func TypeVariable(name string) *Type {
	return &Type{
		Variant:     Variable,
		Name:        name,
		RecognizeFn: func(value.Value) bool { return true },
		FormatFn:    func(outer Styler, _ Inner) string { return outer(name) },
	}
}

// UnaryTypeVariable builds a type variable with one child slot whose
// sub-type is inner (e.g. "f a" for a Functor constraint over the
// same "a" used elsewhere in the signature). inner is owned by the
// caller, not synthesised here, so a signature's "f a" and "f b"
// render with the real variable names the rest of the signature uses
// instead of an internal sentinel.
func UnaryTypeVariable(name string, inner *Type) *Type {
	return &Type{
		Variant:     Variable,
		Name:        name,
		Keys:        []string{"$1"},
		Children:    map[string]Child{"$1": {Extractor: noChildExtractor, SubType: inner}},
		RecognizeFn: func(value.Value) bool { return true },
		FormatFn: func(outer Styler, innerStyler Inner) string {
			body := fmt.Sprintf("%s %s", outer(name), innerStyler("$1", inner.Format(outer, innerStyler)))
			return outer("(") + body + outer(")")
		},
	}
}

// BinaryTypeVariable builds a type variable with two child slots
// whose sub-types are a and b, owned by the caller for the same
// reason UnaryTypeVariable takes inner explicitly.
func BinaryTypeVariable(name string, a, b *Type) *Type {
	return &Type{
		Variant: Variable,
		Name:    name,
		Keys:    []string{"$1", "$2"},
		Children: map[string]Child{
			"$1": {Extractor: noChildExtractor, SubType: a},
			"$2": {Extractor: noChildExtractor, SubType: b},
		},
		RecognizeFn: func(value.Value) bool { return true },
		FormatFn: func(outer Styler, innerStyler Inner) string {
			body := fmt.Sprintf("%s %s %s", outer(name), innerStyler("$1", a.Format(outer, innerStyler)), innerStyler("$2", b.Format(outer, innerStyler)))
			return outer("(") + body + outer(")")
		},
	}
}

// localName strips a "namespace/" qualifier for display, matching the
// "namespace/LocalName" possibly-qualified display name described in
// §3.
func localName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// StripOuterParens removes one layer of outermost parentheses from a
// formatted sub-type, the rule §4.6 applies to every composite type
// except Function and Record when they appear at the top level of a
// parameter slot.
func StripOuterParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth := 0
		for i, r := range s {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i != len(s)-1 {
					return s
				}
			}
		}
		return s[1 : len(s)-1]
	}
	return s
}
