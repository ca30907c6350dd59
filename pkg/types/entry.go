package types

// Entry is one root record returned by a full listing.
// Value is nil when the stored text is not valid JSON.
type Entry struct {
	Key   string `json:"id"`
	Value any    `json:"value"`
}

// Kind names the shape of a decoded JSON value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindOther // not produced by decoding JSON into any
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
	KindOther:  "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf reports the kind of a value decoded from JSON into any.
// Numbers may be float64 or a json.Number-like string type implementing
// Float64; both report KindNumber.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int64, int32, uint, uint64, uint32, interface{ Float64() (float64, error) }:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindOther
	}
}
