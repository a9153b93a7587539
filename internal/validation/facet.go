package validation

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/phrazzld/shelf-api/internal/apperr"
)

// Facet names the part of a request a schema applies to.
type Facet int

const (
	FacetBody Facet = iota
	FacetQuery
	FacetParams
)

func (f Facet) String() string {
	switch f {
	case FacetQuery:
		return "query"
	case FacetParams:
		return "params"
	default:
		return "body"
	}
}

// Fail builds the failure reported for violations on this facet.
func (f Facet) Fail(violations []Violation) *apperr.Failure {
	switch f {
	case FacetQuery:
		return apperr.InvalidQuery(violations)
	case FacetParams:
		return apperr.InvalidParams(violations)
	default:
		return apperr.InvalidBody(violations)
	}
}

// Check validates payload and returns the clean values, or the facet's
// failure when any violation was found.
func (v *Validator) Check(facet Facet, payload map[string]any, s Schema, opts Options) (map[string]any, error) {
	clean, violations := v.Validate(payload, s, opts)
	if len(violations) > 0 {
		return nil, facet.Fail(violations)
	}
	return clean, nil
}

// Decode copies clean values into out, matching fields by their json tag.
func Decode(clean map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		ErrorUnused:      false,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(clean)
}
