package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ExtensionState holds JSON values under keys this program does not model.
// They survive a load and save round trip untouched.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(k string, v any) error {
	if *e == nil {
		*e = ExtensionState{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", k, err)
	}

	(*e)[k] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the extension key, if present.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Keys returns the stored keys in sorted order.
func (e ExtensionState) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}

// Clone returns a copy that shares no map with e.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}

// SplitKnown decodes a JSON object and returns the raw values whose keys are
// not in known.
func SplitKnown(data []byte, known ...string) (ExtensionState, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return ExtensionState(all), nil
}
