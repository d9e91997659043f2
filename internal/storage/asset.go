package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)

type ValidatingSpec interface {
	Validate() error
}

type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	if reflect.ValueOf(a.Spec).IsZero() {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

// Getter looks up a value by identifier.
type Getter[T any] interface {
	Get(id string) (T, bool)
}

// Ref is a typed identifier pointing at a value of type T. It holds only
// the key; every lookup goes through a Getter so nothing is cached.
type Ref[T any] struct {
	key string
}

func NewRef[T any](key string) Ref[T] {
	return Ref[T]{key: key}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.key)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.key)
}

func (r Ref[T]) Validate() error {
	if r.key == "" {
		return fmt.Errorf("%s identifier is required", refKind[T]())
	}
	if !identifierPattern.MatchString(r.key) {
		return fmt.Errorf("%s identifier %q must be alphanumeric", refKind[T](), r.key)
	}
	return nil
}

// Resolve looks the reference up in g.
func (r Ref[T]) Resolve(g Getter[T]) (T, bool) {
	if r.key == "" {
		var zero T
		return zero, false
	}
	return g.Get(r.key)
}

func (r Ref[T]) Id() string {
	return r.key
}

func (r Ref[T]) IsZero() bool {
	return r.key == ""
}

func refKind[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
