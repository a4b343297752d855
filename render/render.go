// Package render turns a solve.Diagnostic into the three-line banner
// described in §4.6: a plain signature line, a caret-underline line,
// and a numbered-label line, each followed by a supplementary body
// appropriate to the diagnostic's kind.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/typedef-go/typedef/infer"
	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/solve"
	"github.com/typedef-go/typedef/types"
)

// Signature renders the plain "name :: context => sig" line with no
// highlighting at all — the stable string a curried Callable reports
// from its String method.
func Signature(name string, info *types.TypeInfo) string {
	return linePrefix(name, info) + joinSlots(info.Types)
}

// Diagnostic renders the full banner plus supplementary body for one
// solve failure. env is the universe the diagnostic's loose-inference
// body text is drawn from.
func Diagnostic(name string, info *types.TypeInfo, env []*types.Type, d *solve.Diagnostic) string {
	spans := highlightSpans(info, env, d)
	prefix := linePrefix(name, info)
	sig := joinSlots(info.Types)
	caret, label := maskSlots(info.Types, spans)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", prefix, sig)
	fmt.Fprintf(&b, "%s%s\n", prefix, caret)
	fmt.Fprintf(&b, "%s%s\n", prefix, label)
	b.WriteString(body(env, d))
	return b.String()
}

func linePrefix(name string, info *types.TypeInfo) string {
	return name + " :: " + constraintsRepr(info.Constraints)
}

func constraintsRepr(constraints map[string][]types.TypeClass) string {
	var items []string
	names := make([]string, 0, len(constraints))
	for v := range constraints {
		names = append(names, v)
	}
	sort.Strings(names)
	for _, v := range names {
		for _, c := range constraints[v] {
			items = append(items, fmt.Sprintf("%s %s", c.Name(), v))
		}
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0] + " => "
	default:
		return "(" + strings.Join(items, ", ") + ") => "
	}
}

func joinSlots(ts []*types.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = topLevelText(t)
	}
	return strings.Join(parts, " -> ")
}

// topLevelText applies the top-level stripping rule of §4.6: every
// composite type except Function and Record loses its outermost
// parenthesis pair when it sits directly in a parameter or return
// slot.
func topLevelText(t *types.Type) string {
	plain := t.Format(nil, nil)
	if t.Variant == types.Function || t.Variant == types.Record {
		return plain
	}
	return types.StripOuterParens(plain)
}

func slotKey(i, arity int) string {
	if i == arity {
		return "$return"
	}
	return fmt.Sprintf("$%d", i+1)
}

// span is one highlighted node: the full path from the top-level slot
// down to the offending sub-type, and the label text to centre under
// it.
type span struct {
	path  types.PropPath
	label string
}

func maskSlots(ts []*types.Type, spans []span) (caret, label string) {
	byTop := make(map[string][]span)
	for _, s := range spans {
		if len(s.path) == 0 {
			continue
		}
		byTop[s.path[0]] = append(byTop[s.path[0]], span{path: s.path[1:], label: s.label})
	}
	arity := len(ts) - 1
	caretParts := make([]string, len(ts))
	labelParts := make([]string, len(ts))
	for i, t := range ts {
		key := slotKey(i, arity)
		sub := byTop[key]
		c, l := maskNode(t, sub)
		caretParts[i], labelParts[i] = stripLikePlain(t, c), stripLikePlain(t, l)
	}
	sep := strings.Repeat(" ", len(" -> "))
	return strings.Join(caretParts, sep), strings.Join(labelParts, sep)
}

// stripLikePlain blanks out the same leading/trailing character mask
// removed textual parens, so the caret/label line stays aligned with
// topLevelText's stripped width.
func stripLikePlain(t *types.Type, masked string) string {
	if t.Variant == types.Function || t.Variant == types.Record {
		return masked
	}
	plain := t.Format(nil, nil)
	stripped := types.StripOuterParens(plain)
	if len(stripped) == len(plain) {
		return masked
	}
	runes := []rune(masked)
	if len(runes) < 2 {
		return masked
	}
	return string(runes[1 : len(runes)-1])
}

// maskNode mirrors the literal structure each constructors.go FormatFn
// builds, substituting blanks for literal syntax and carets/labels
// for children on the highlight list; matched is the (possibly empty)
// remaining sub-path pointing further down from this node.
func maskNode(t *types.Type, matched []span) (caret, label string) {
	plain := t.Format(nil, nil)
	width := utf8.RuneCountInString(plain)
	for _, s := range matched {
		if len(s.path) == 0 {
			return strings.Repeat("^", width), centerLabel(s.label, width)
		}
	}

	blank := func(n int) string { return strings.Repeat(" ", n) }
	childSpans := func(key string) []span {
		var out []span
		for _, s := range matched {
			if len(s.path) > 0 && s.path[0] == key {
				out = append(out, span{path: s.path[1:], label: s.label})
			}
		}
		return out
	}
	recurse := func(key string, sub *types.Type) (string, string) {
		return maskNode(sub, childSpans(key))
	}

	switch t.Variant {
	case types.Unary:
		c1, l1 := recurse("$1", t.Children["$1"].SubType)
		return blank(1) + blank(utf8.RuneCountInString(localNameOf(t))) + blank(1) + c1 + blank(1),
			blank(1) + blank(utf8.RuneCountInString(localNameOf(t))) + blank(1) + l1 + blank(1)

	case types.Binary:
		c1, l1 := recurse("$1", t.Children["$1"].SubType)
		c2, l2 := recurse("$2", t.Children["$2"].SubType)
		nameW := utf8.RuneCountInString(localNameOf(t))
		return blank(1) + blank(nameW) + blank(1) + c1 + blank(1) + c2 + blank(1),
			blank(1) + blank(nameW) + blank(1) + l1 + blank(1) + l2 + blank(1)

	case types.Variable:
		if len(t.Keys) == 0 {
			return blank(width), blank(width)
		}
		nameW := utf8.RuneCountInString(t.Name)
		if len(t.Keys) == 1 {
			c1, l1 := recurse("$1", t.Children["$1"].SubType)
			return blank(1) + blank(nameW) + blank(1) + c1 + blank(1),
				blank(1) + blank(nameW) + blank(1) + l1 + blank(1)
		}
		c1, l1 := recurse("$1", t.Children["$1"].SubType)
		c2, l2 := recurse("$2", t.Children["$2"].SubType)
		return blank(1) + blank(nameW) + blank(1) + c1 + blank(1) + c2 + blank(1),
			blank(1) + blank(nameW) + blank(1) + l1 + blank(1) + l2 + blank(1)

	case types.Record:
		var cParts, lParts []string
		for _, key := range t.Keys {
			c, l := recurse(key, t.Children[key].SubType)
			prefixW := utf8.RuneCountInString(key) + 2 // "key: "
			cParts = append(cParts, blank(prefixW)+c)
			lParts = append(lParts, blank(prefixW)+l)
		}
		sep := blank(2) // ", "
		return blank(1) + strings.Join(cParts, sep) + blank(1),
			blank(1) + strings.Join(lParts, sep) + blank(1)

	case types.Function:
		n := len(t.Keys)
		params := t.Keys[:n-1]
		retKey := t.Keys[n-1]

		paramC := make([]string, len(params))
		paramL := make([]string, len(params))
		for i, key := range params {
			paramC[i], paramL[i] = recurse(key, t.Children[key].SubType)
		}
		retC, retL := recurse(retKey, t.Children[retKey].SubType)

		var innerC, innerL string
		if len(params) == 1 {
			innerC = paramC[0] + blank(len(" -> ")) + retC
			innerL = paramL[0] + blank(len(" -> ")) + retL
		} else {
			sep := blank(len(", "))
			innerC = blank(1) + strings.Join(paramC, sep) + blank(1) + blank(len(" -> ")) + retC
			innerL = blank(1) + strings.Join(paramL, sep) + blank(1) + blank(len(" -> ")) + retL
		}
		return blank(1) + innerC + blank(1), blank(1) + innerL + blank(1)

	default:
		return blank(width), blank(width)
	}
}

func localNameOf(t *types.Type) string {
	if i := strings.LastIndexByte(t.Name, '/'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

func centerLabel(label string, width int) string {
	lw := utf8.RuneCountInString(label)
	if lw >= width {
		return label
	}
	total := width - lw
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", right)
}

// highlightSpans computes the full set of (path, label) pairs to
// underline for d, per the table in §4.6.
func highlightSpans(info *types.TypeInfo, env []*types.Type, d *solve.Diagnostic) []span {
	switch d.Kind {
	case solve.InvalidValue:
		return []span{{path: d.Path, label: "1"}}

	case solve.TypeClassViolation:
		paths := findVarPaths(info, d.VarName)
		spans := make([]span, 0, len(paths))
		for i, p := range paths {
			spans = append(spans, span{path: p, label: strconv.Itoa(i + 1)})
		}
		if len(spans) == 0 {
			return []span{{path: d.Path, label: "1"}}
		}
		return spans

	case solve.TypeVarViolation:
		return violationSpans(env, d.ValuesByPath)

	case solve.WrongArity:
		if len(d.Path) == 0 {
			return nil
		}
		return []span{{path: d.Path, label: "1"}}

	default:
		return nil
	}
}

// findVarPaths walks every top-level slot looking for occurrences of
// a type variable named name, returning every path at which it
// appears (§4.6's "every occurrence of the variable").
func findVarPaths(info *types.TypeInfo, name string) []types.PropPath {
	arity := len(info.Types) - 1
	var out []types.PropPath
	for i, t := range info.Types {
		key := slotKey(i, arity)
		out = append(out, walkForVar(t, types.PropPath{key}, name)...)
	}
	return out
}

func walkForVar(t *types.Type, path types.PropPath, name string) []types.PropPath {
	var out []types.PropPath
	if t.Variant == types.Variable && t.Name == name {
		out = append(out, path)
		return out
	}
	for _, key := range t.Keys {
		child := t.Children[key]
		if child.SubType == nil {
			continue
		}
		out = append(out, walkForVar(child.SubType, path.Extend(types.PropPath{key}), name)...)
	}
	return out
}

// violationSpans combines the values recorded at every position and
// runs strict inference over the union: if some environment type
// accommodates all of them it returns no spans, otherwise it
// underlines every recorded position. It does not pick out a subset:
// a position whose values are compatible with those of the violating
// position is underlined too whenever the union as a whole is
// inconsistent.
func violationSpans(env []*types.Type, byPath map[string][]value.Value) []span {
	keys := make([]string, 0, len(byPath))
	for k := range byPath {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var all []value.Value
	for _, k := range keys {
		all = append(all, byPath[k]...)
	}
	if len(infer.Candidates(env, all, true)) > 0 {
		return nil
	}

	spans := make([]span, 0, len(keys))
	for i, k := range keys {
		spans = append(spans, span{path: deserializePath(k), label: strconv.Itoa(i + 1)})
	}
	return spans
}

func deserializePath(s string) types.PropPath {
	if s == "" {
		return nil
	}
	return types.PropPath(strings.Split(s, "/"))
}

// body renders the supplementary block beneath the three-line banner.
func body(env []*types.Type, d *solve.Diagnostic) string {
	switch d.Kind {
	case solve.InvalidValue:
		return fmt.Sprintf("%s :: %s\n", value.ToString(d.Value), looseTypesRepr(env, d.Value))

	case solve.TypeClassViolation:
		return fmt.Sprintf("%s :: %s (violates %s)\n", value.ToString(d.Value), looseTypesRepr(env, d.Value), d.Class.Name())

	case solve.TypeVarViolation:
		keys := make([]string, 0, len(d.ValuesByPath))
		for k := range d.ValuesByPath {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			for _, v := range d.ValuesByPath[k] {
				fmt.Fprintf(&b, "%s :: %s\n", value.ToString(v), looseTypesRepr(env, v))
			}
		}
		return b.String()

	case solve.WrongArity:
		parts := make([]string, len(d.ReceivedArgs))
		for i, v := range d.ReceivedArgs {
			parts[i] = value.ToString(v)
		}
		noun := "arguments"
		if len(d.ReceivedArgs) == 1 {
			noun = "argument"
		}
		return fmt.Sprintf("received %d %s: [%s]\n", len(d.ReceivedArgs), noun, strings.Join(parts, ", "))

	default:
		return ""
	}
}

func looseTypesRepr(env []*types.Type, v value.Value) string {
	cands := infer.Candidates(env, []value.Value{v}, false)
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.String()
	}
	return strings.Join(names, " | ")
}
