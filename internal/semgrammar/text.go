package semgrammar

import "strings"

// InflectKey is a key into an InflectionTable.
type InflectKey string

const (
	InflectOne     InflectKey = "one"
	InflectThreeSg InflectKey = "threeSg"
	InflectPl      InflectKey = "pl"
	InflectOneOrPl InflectKey = "oneOrPl"
	InflectPast    InflectKey = "past"
	InflectNom     InflectKey = "nom"
	InflectObj     InflectKey = "obj"
	InflectPlain   InflectKey = "plain"
)

// InflectionTable is a finite mapping from inflection key to surface
// string. Text carrying no table is already-conjugated; text carrying a
// table must be conjugated before emission.
type InflectionTable map[InflectKey]string

// Lookup finds the surface form for the first key in order that has an
// entry, returning the found key, the form, and whether anything matched.
func (t InflectionTable) Lookup(keys ...InflectKey) (InflectKey, string, bool) {
	for _, k := range keys {
		if form, ok := t[k]; ok {
			return k, form, true
		}
	}
	return "", "", false
}

func (t InflectionTable) String() string {
	if len(t) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	// deterministic order for the fixed key set
	order := []InflectKey{InflectOne, InflectThreeSg, InflectPl, InflectOneOrPl, InflectPast, InflectNom, InflectObj, InflectPlain}
	first := true
	for _, k := range order {
		if v, ok := t[k]; ok {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(string(k))
			sb.WriteString(": ")
			sb.WriteString(v)
			first = false
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// Equal does a structural, order-independent comparison of two inflection
// tables.
func (t InflectionTable) Equal(o InflectionTable) bool {
	if len(t) != len(o) {
		return false
	}
	for k, v := range t {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// TextFragment is one element of a Text array: a plain string, or an
// InflectionTable awaiting conjugation. Exactly one of the two fields is set.
type TextFragment struct {
	Plain   string
	Table   InflectionTable
	IsPlain bool
}

func PlainFragment(s string) TextFragment {
	return TextFragment{Plain: s, IsPlain: true}
}

func TableFragment(t InflectionTable) TextFragment {
	return TextFragment{Table: t}
}

func (f TextFragment) String() string {
	if f.IsPlain {
		return f.Plain
	}
	return f.Table.String()
}

func (f TextFragment) Equal(o TextFragment) bool {
	if f.IsPlain != o.IsPlain {
		return false
	}
	if f.IsPlain {
		return f.Plain == o.Plain
	}
	return f.Table.Equal(o.Table)
}

// Text is display text: either a string, an inflection table, or an
// ordered sequence mixing both. A nil/empty Text means the rule carries no
// displayable text (a stop-word).
type Text []TextFragment

// NewText builds a Text out of plain strings only, a common case.
func NewText(parts ...string) Text {
	t := make(Text, len(parts))
	for i, p := range parts {
		t[i] = PlainFragment(p)
	}
	return t
}

// Concat returns a ∥ b, the concatenation used throughout edit-rule
// generation.
func (t Text) Concat(o Text) Text {
	out := make(Text, 0, len(t)+len(o))
	out = append(out, t...)
	out = append(out, o...)
	return out
}

func (t Text) Equal(o Text) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (t Text) String() string {
	parts := make([]string, len(t))
	for i := range t {
		parts[i] = t[i].String()
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the text carries no displayable content at all.
func (t Text) IsEmpty() bool {
	return len(t) == 0
}
