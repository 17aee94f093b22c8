package youtrack

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FieldValueKind tags the shape a custom field value arrived in.
type FieldValueKind int

const (
	FieldValueUnknown FieldValueKind = iota
	FieldValueScalar
	FieldValueSingleRef
	FieldValueRefList
)

func (k FieldValueKind) String() string {
	switch k {
	case FieldValueScalar:
		return "scalar"
	case FieldValueSingleRef:
		return "single_ref"
	case FieldValueRefList:
		return "ref_list"
	default:
		return "unknown"
	}
}

// FieldValue is a custom field value classified at the ingestion boundary so
// downstream code never inspects raw JSON shapes.
//
//	Scalar    -> a non-empty string, trimmed
//	SingleRef -> an object with a name; Names has one element
//	RefList   -> an array whose first element is an object with a name
//	Unknown   -> anything else (null, numbers, empty strings, nameless objects)
type FieldValue struct {
	Kind   FieldValueKind
	Scalar string
	Names  []string
}

// ParseFieldValue classifies raw JSON. It never fails; malformed input is Unknown.
func ParseFieldValue(raw json.RawMessage) FieldValue {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return FieldValue{}
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return FieldValue{}
	}

	switch typed := v.(type) {
	case map[string]any:
		if name := refName(typed); name != "" {
			return FieldValue{Kind: FieldValueSingleRef, Names: []string{name}}
		}
	case []any:
		if len(typed) == 0 {
			return FieldValue{}
		}
		first, ok := typed[0].(map[string]any)
		if !ok || refName(first) == "" {
			return FieldValue{}
		}
		names := make([]string, 0, len(typed))
		for _, el := range typed {
			if obj, ok := el.(map[string]any); ok {
				if name := refName(obj); name != "" {
					names = append(names, name)
				}
			}
		}
		return FieldValue{Kind: FieldValueRefList, Names: names}
	case string:
		if s := strings.TrimSpace(typed); s != "" {
			return FieldValue{Kind: FieldValueScalar, Scalar: s}
		}
	}
	return FieldValue{}
}

func refName(obj map[string]any) string {
	switch name := obj["name"].(type) {
	case string:
		return name
	case float64:
		if name == 0 {
			return ""
		}
		return strconv.FormatFloat(name, 'f', -1, 64)
	}
	return ""
}

// Name returns the first usable name carried by the value.
func (v FieldValue) Name() (string, bool) {
	switch v.Kind {
	case FieldValueScalar:
		return v.Scalar, v.Scalar != ""
	case FieldValueSingleRef, FieldValueRefList:
		if len(v.Names) > 0 && v.Names[0] != "" {
			return v.Names[0], true
		}
	}
	return "", false
}

// MarshalJSON re-emits the value in the tracker's shape.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldValueScalar:
		return json.Marshal(v.Scalar)
	case FieldValueSingleRef:
		if len(v.Names) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(map[string]string{"name": v.Names[0]})
	case FieldValueRefList:
		refs := make([]map[string]string, len(v.Names))
		for i, n := range v.Names {
			refs[i] = map[string]string{"name": n}
		}
		return json.Marshal(refs)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts any JSON and classifies it.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	*v = ParseFieldValue(data)
	return nil
}
