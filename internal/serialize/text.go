package serialize

import (
	"fmt"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// encodeText projects a Text into its wire shape: a bare string when it is
// a single plain fragment, an inflection-table object when it is a single
// table fragment, or a mixed array otherwise.
func encodeText(t semgrammar.Text) interface{} {
	if len(t) == 0 {
		return nil
	}
	if len(t) == 1 {
		return encodeFragment(t[0])
	}
	out := make([]interface{}, len(t))
	for i, frag := range t {
		out[i] = encodeFragment(frag)
	}
	return out
}

func encodeFragment(frag semgrammar.TextFragment) interface{} {
	if frag.IsPlain {
		return frag.Plain
	}
	out := make(map[string]string, len(frag.Table))
	for k, v := range frag.Table {
		out[string(k)] = v
	}
	return out
}

// decodeText reverses encodeText. raw is whatever encoding/json produced
// for the field's interface{} destination: nil, string, map[string]any, or
// []any of those.
func decodeText(raw interface{}) (semgrammar.Text, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return semgrammar.NewText(v), nil
	case map[string]interface{}:
		table, err := decodeTable(v)
		if err != nil {
			return nil, err
		}
		return semgrammar.Text{semgrammar.TableFragment(table)}, nil
	case []interface{}:
		out := make(semgrammar.Text, 0, len(v))
		for _, elem := range v {
			switch e := elem.(type) {
			case string:
				out = append(out, semgrammar.PlainFragment(e))
			case map[string]interface{}:
				table, err := decodeTable(e)
				if err != nil {
					return nil, err
				}
				out = append(out, semgrammar.TableFragment(table))
			default:
				return nil, fmt.Errorf("serialize: text array element has unsupported type %T", elem)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("serialize: text field has unsupported type %T", raw)
	}
}

func decodeTable(m map[string]interface{}) (semgrammar.InflectionTable, error) {
	table := make(semgrammar.InflectionTable, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("serialize: inflection table key %q has non-string value", k)
		}
		table[semgrammar.InflectKey(k)] = s
	}
	return table, nil
}
