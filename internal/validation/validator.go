package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/phrazzld/shelf-api/internal/sanitize"
)

// Constraint keys reported for checks that are not expressed as rules.
const (
	ConstraintDefined   = "isDefined"
	ConstraintString    = "isString"
	ConstraintInt       = "isInt"
	ConstraintNumber    = "isNumber"
	ConstraintBool      = "isBoolean"
	ConstraintWhitelist = "whitelistValidation"
	ConstraintJSON      = "isJson"
)

// Validator interprets schemas. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &Validator{validate: validate}
}

// Validate checks payload against schema. It returns the clean payload,
// holding only declared fields with coerced and trimmed values plus defaults
// for absent optional fields, and every violation found.
//
// Violations follow schema field order; undeclared properties come last,
// sorted by name.
func (v *Validator) Validate(payload map[string]any, s Schema, opts Options) (map[string]any, []Violation) {
	coerced := make(map[string]any, len(payload))
	for k, val := range payload {
		if f, ok := s.Field(k); ok {
			val = coerce(val, f.Type)
		}
		coerced[k] = val
	}

	trimmed, _ := sanitize.Trim(coerced).(map[string]any)

	clean := make(map[string]any, len(s.Fields))
	var violations []Violation

	for _, f := range s.Fields {
		val, present := trimmed[f.Name]
		if !present || val == nil {
			if f.Required && !opts.SkipMissingProperties {
				violations = append(violations, Violation{
					Property:    f.Name,
					Constraints: map[string]string{ConstraintDefined: f.Name + " should not be null or undefined"},
				})
			} else if f.Default != nil {
				clean[f.Name] = f.Default
			}
			continue
		}

		if c := v.check(f, val); len(c) > 0 {
			violations = append(violations, Violation{Property: f.Name, Constraints: c, Value: val})
			continue
		}
		clean[f.Name] = val
	}

	var unknown []string
	for k := range trimmed {
		if _, ok := s.Field(k); !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		violations = append(violations, Violation{
			Property:    k,
			Constraints: map[string]string{ConstraintWhitelist: "property " + k + " should not exist"},
			Value:       trimmed[k],
		})
	}

	return clean, violations
}

// check returns the failed constraints of a present value. Rules run only
// when the type matches; each rule is evaluated independently.
func (v *Validator) check(f Field, val any) map[string]string {
	if !hasType(val, f.Type) {
		msg := f.TypeMessage
		if msg == "" {
			msg = typeMessage(f)
		}
		return map[string]string{typeConstraint(f.Type): msg}
	}

	var failed map[string]string
	for _, r := range f.Rules {
		if err := v.validate.Var(val, r.Tag); err == nil {
			continue
		}
		if failed == nil {
			failed = make(map[string]string, len(f.Rules))
		}
		key, msg := ruleConstraint(f, r)
		failed[key] = msg
	}
	return failed
}

func typeConstraint(t Type) string {
	switch t {
	case Int:
		return ConstraintInt
	case Number:
		return ConstraintNumber
	case Bool:
		return ConstraintBool
	default:
		return ConstraintString
	}
}

func typeMessage(f Field) string {
	switch f.Type {
	case Int:
		return f.Name + " must be an integer number"
	case Number:
		return f.Name + " must be a number conforming to the specified constraints"
	case Bool:
		return f.Name + " must be a boolean value"
	default:
		return f.Name + " must be a string"
	}
}

// ruleConstraint names a failed rule and describes it. Known tags get the
// constraint names clients of this API already match on.
func ruleConstraint(f Field, r Rule) (string, string) {
	tag, param, _ := strings.Cut(r.Tag, "=")
	str := f.Type == String

	var key, msg string
	switch {
	case tag == "notblank" || (tag == "required" && str):
		key, msg = "isNotEmpty", f.Name+" should not be empty"
	case tag == "email":
		key, msg = "isEmail", f.Name+" must be an email"
	case (tag == "min" || tag == "gte") && str:
		key, msg = "minLength", fmt.Sprintf("%s must be longer than or equal to %s characters", f.Name, param)
	case (tag == "max" || tag == "lte") && str:
		key, msg = "maxLength", fmt.Sprintf("%s must be shorter than or equal to %s characters", f.Name, param)
	case tag == "min" || tag == "gte":
		key, msg = "min", fmt.Sprintf("%s must not be less than %s", f.Name, param)
	case tag == "max" || tag == "lte":
		key, msg = "max", fmt.Sprintf("%s must not be greater than %s", f.Name, param)
	case tag == "oneof":
		key, msg = "isIn", fmt.Sprintf("%s must be one of the following values: %s", f.Name,
			strings.Join(strings.Fields(param), ", "))
	default:
		key, msg = tag, fmt.Sprintf("%s failed the %s constraint", f.Name, r.Tag)
	}

	if r.Message != "" {
		msg = r.Message
	}
	return key, msg
}
