// Package fieldprobe extracts values from raw provider rows whose schemas
// disagree on field names. Each canonical field declares an ordered list of
// accepted source aliases; one generic probe evaluates them, replacing
// ad hoc per-source branching.
package fieldprobe

// Mapping declares a canonical field and the source field names that may
// carry it, in probe order.
type Mapping struct {
	Canonical string
	Aliases   []string
}

// Probe returns the first non-nil value among the mapping's aliases.
func Probe(row map[string]interface{}, m Mapping) (interface{}, bool) {
	for _, alias := range m.Aliases {
		if v, ok := row[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String probes for a string-valued field.
func String(row map[string]interface{}, m Mapping) (string, bool) {
	v, ok := Probe(row, m)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int probes for an integer-valued field. JSON numbers decode as float64,
// so both representations are accepted.
func Int(row map[string]interface{}, m Mapping) (int, bool) {
	v, ok := Probe(row, m)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// Float probes for a float-valued field.
func Float(row map[string]interface{}, m Mapping) (float64, bool) {
	v, ok := Probe(row, m)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
