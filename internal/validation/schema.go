package validation

// Type is the scalar type a field's value must have after coercion.
type Type int

const (
	// String fields must hold a JSON string.
	String Type = iota + 1
	// Int fields must hold an integral number; numeric strings are accepted.
	Int
	// Number fields must hold any number; numeric strings are accepted.
	Number
	// Bool fields must hold a boolean; "true" and "false" are accepted.
	Bool
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Number:
		return "number"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Rule is a single go-playground/validator tag such as "notblank", "min=6"
// or "gte=1", with an optional message replacing the generated one.
type Rule struct {
	Tag     string
	Message string
}

// Field describes one accepted property.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Rules    []Rule
	// TypeMessage replaces the generated type mismatch message.
	TypeMessage string
	// Default is stored in the clean output when the field is absent.
	Default any
}

// Schema is the full description of one request facet. Schemas are
// read-only once declared and safe to share between requests.
type Schema struct {
	Name   string
	Fields []Field
}

// Options tune a single validation run.
type Options struct {
	// SkipMissingProperties disables presence checks, for partial updates.
	SkipMissingProperties bool
}

// Violation lists every constraint one property failed.
type Violation struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints"`
	Value       any               `json:"value,omitempty"`
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
