// Package targetspec loads structured target specification files.
//
// A specification is a flat JSON object of string properties named
// <target>.json. Only a handful of keys are consulted; everything else in
// the file is ignored. Comments and trailing commas are tolerated.
package targetspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
)

// Recognized property names.
const (
	KeyArch       = "arch"
	KeyOS         = "os"
	KeyCPU        = "cpu"
	KeyFeatures   = "features"
	KeyLinker     = "linker"
	KeyLLVMTarget = "llvm-target"
)

var (
	// ErrMissingField indicates that a required property is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldType indicates that a recognized property is not a string.
	ErrFieldType = errors.New("field is not a string")
)

var (
	requiredKeys = []string{KeyArch, KeyOS}
	optionalKeys = []string{KeyCPU, KeyFeatures, KeyLinker, KeyLLVMTarget}
)

// Spec is a parsed target specification. It is never mutated after Parse.
type Spec struct {
	props map[string]string
}

// Parse decodes a specification and validates the recognized keys.
func Parse(data []byte) (*Spec, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing target spec: %w", err)
	}

	props := make(map[string]string, len(requiredKeys)+len(optionalKeys))
	for _, key := range requiredKeys {
		value, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingField, key)
		}
		s, err := decodeString(key, value)
		if err != nil {
			return nil, err
		}
		props[key] = s
	}
	for _, key := range optionalKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		s, err := decodeString(key, value)
		if err != nil {
			return nil, err
		}
		props[key] = s
	}
	return &Spec{props: props}, nil
}

func decodeString(key string, value json.RawMessage) (string, error) {
	var s string
	// null unmarshals into a string without error
	if string(value) == "null" {
		return "", fmt.Errorf("%q: %w", key, ErrFieldType)
	}
	if err := json.Unmarshal(value, &s); err != nil {
		return "", fmt.Errorf("%q: %w", key, ErrFieldType)
	}
	return s, nil
}

// Arch returns the mandatory arch property.
func (s *Spec) Arch() string { return s.props[KeyArch] }

// OS returns the mandatory os property.
func (s *Spec) OS() string { return s.props[KeyOS] }

// CPU returns the cpu property, if declared.
func (s *Spec) CPU() (string, bool) { return s.Get(KeyCPU) }

// Features returns the raw features string, if declared.
func (s *Spec) Features() (string, bool) { return s.Get(KeyFeatures) }

// Linker returns the linker property, if declared.
func (s *Spec) Linker() (string, bool) { return s.Get(KeyLinker) }

// LLVMTarget returns the backend target name, if declared.
func (s *Spec) LLVMTarget() (string, bool) { return s.Get(KeyLLVMTarget) }

// Get returns a recognized property.
func (s *Spec) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.props[key]
	return v, ok
}

// Keys returns the recognized properties present in the spec, sorted.
func (s *Spec) Keys() []string {
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
