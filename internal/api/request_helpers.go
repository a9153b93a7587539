package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/pipeline"
	"github.com/phrazzld/shelf-api/internal/store"
	"github.com/phrazzld/shelf-api/internal/validation"
)

// decodeBody copies the validated body of r into out.
func decodeBody(r *http.Request, out any) error {
	return decode(pipeline.Body(r), "body", out)
}

// pathID returns the validated {id} URL parameter of r.
func pathID(r *http.Request) (int64, error) {
	var p IDParams
	if err := decode(pipeline.Params(r), "params", &p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// listPage returns the page selected by the validated paging query of r.
func listPage(r *http.Request) (store.Page, error) {
	q := ListQuery{Page: 1, Limit: DefaultPageLimit}
	if err := decode(pipeline.Query(r), "query", &q); err != nil {
		return store.Page{}, err
	}
	return store.Page{Number: q.Page, Size: q.Limit}, nil
}

// decode failures mean a schema and its DTO disagree, which is a bug, so
// they surface as unhandled errors.
func decode(clean map[string]any, facet string, out any) error {
	if err := validation.Decode(clean, out); err != nil {
		return fmt.Errorf("failed to decode request %s: %w", facet, err)
	}
	return nil
}
