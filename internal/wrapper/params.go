package wrapper

import (
	"strings"

	"cmis-go/internal/cmis"
)

// Parameter checks. Messages match the ones CMIS clients expect from other
// server implementations.

func checkRepositoryID(repositoryID string) error {
	if repositoryID == "" {
		return cmis.NewInvalidArgumentError("Repository Id must be set!")
	}
	if strings.TrimSpace(repositoryID) == "" {
		return cmis.NewInvalidArgumentError("Repository Id must not be empty!")
	}
	return nil
}

func checkID(name, id string) error {
	if id == "" {
		return cmis.NewInvalidArgumentError("%s must be set!", name)
	}
	return nil
}

// checkIDs passes when at least one of ids is set.
func checkIDs(name string, ids ...string) error {
	for _, id := range ids {
		if id != "" {
			return nil
		}
	}
	return cmis.NewInvalidArgumentError("%s must be set!", name)
}

func checkPath(name, path string) error {
	if path == "" {
		return cmis.NewInvalidArgumentError("%s must be set!", name)
	}
	if path[0] != '/' {
		return cmis.NewInvalidArgumentError("%s must start with '/'!", name)
	}
	return nil
}

func checkProperties(props *cmis.Properties) error {
	if props == nil {
		return cmis.NewInvalidArgumentError("Properties must be set!")
	}
	return nil
}

// checkProperty checks that props contains propertyID with a first value of
// Go type T.
func checkProperty[T any](props *cmis.Properties, propertyID string) error {
	if props == nil {
		return cmis.NewInvalidArgumentError("Property %s must be set!", propertyID)
	}
	p := props.Get(propertyID)
	if p == nil {
		return cmis.NewInvalidArgumentError("Property %s must be set!", propertyID)
	}
	v := p.FirstValue()
	if v == nil {
		return cmis.NewInvalidArgumentError("Property %s must have a value!", propertyID)
	}
	if _, ok := v.(T); !ok {
		return cmis.NewInvalidArgumentError("Property %s has the wrong data type!", propertyID)
	}
	return nil
}

func checkObjectTypeID(props *cmis.Properties) error {
	if err := checkProperties(props); err != nil {
		return err
	}
	return checkProperty[string](props, cmis.PropObjectTypeID)
}

func checkContentStream(cs *cmis.ContentStream) error {
	if cs == nil {
		return cmis.NewInvalidArgumentError("Content must be set!")
	}
	return nil
}

func checkNullOrPositive(name string, value *int64) error {
	if value != nil && *value < 0 {
		return cmis.NewInvalidArgumentError("%s must be positive!", name)
	}
	return nil
}

func defaultTrue(b *bool) *bool {
	if b == nil {
		return cmis.BoolPtr(true)
	}
	return b
}

func defaultFalse(b *bool) *bool {
	if b == nil {
		return cmis.BoolPtr(false)
	}
	return b
}

func defaultIncludeRelationships(v *cmis.IncludeRelationships) *cmis.IncludeRelationships {
	if v == nil {
		r := cmis.IncludeRelationshipsNone
		return &r
	}
	return v
}

func defaultVersioningState(v *cmis.VersioningState) *cmis.VersioningState {
	if v == nil {
		s := cmis.VersioningStateMajor
		return &s
	}
	return v
}

func defaultUnfileObjects(v *cmis.UnfileObjects) *cmis.UnfileObjects {
	if v == nil {
		u := cmis.UnfileObjectsDelete
		return &u
	}
	return v
}

func defaultACLPropagation(v *cmis.ACLPropagation) *cmis.ACLPropagation {
	if v == nil {
		p := cmis.ACLPropagationRepositoryDetermined
		return &p
	}
	return v
}

func defaultRelationshipDirection(v *cmis.RelationshipDirection) *cmis.RelationshipDirection {
	if v == nil {
		d := cmis.RelationshipDirectionSource
		return &d
	}
	return v
}

// defaultRenditionFilter treats a blank filter like a missing one.
func defaultRenditionFilter(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		f := cmis.RenditionFilterNone
		return &f
	}
	return v
}

func skipCount(v *int64) (*int64, error) {
	if v == nil {
		return cmis.Int64Ptr(0), nil
	}
	if *v < 0 {
		return nil, cmis.NewInvalidArgumentError("skipCount must not be negative!")
	}
	return v, nil
}

func maxItemsOrDefault(v *int64, def int64) (*int64, error) {
	if v == nil {
		return cmis.Int64Ptr(def), nil
	}
	if *v < 0 {
		return nil, cmis.NewInvalidArgumentError("maxItems must not be negative!")
	}
	return v, nil
}

func depthOrDefault(v *int64, def int64) (*int64, error) {
	if v == nil {
		return cmis.Int64Ptr(def), nil
	}
	if *v == 0 {
		return nil, cmis.NewInvalidArgumentError("depth must not be 0!")
	}
	if *v < -1 {
		return nil, cmis.NewInvalidArgumentError("depth must not be < -1!")
	}
	return v, nil
}

// copyRequest returns a shallow copy of req so defaults are never written
// into the caller's value. A nil request becomes a zero request.
func copyRequest[T any](req *T) *T {
	r := new(T)
	if req != nil {
		*r = *req
	}
	return r
}
