package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const defaultFragmentPattern = "*.{yaml,yml,json}"

// FragmentSource yields override fragments by id.
type FragmentSource interface {
	Load(id string) (*Map, error)
}

// LoadError is one fragment that could not be read or does not have the
// shape of a policy fragment.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load fragment %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StoreError means the fragment directory exists but could not be listed.
type StoreError struct {
	Dir string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("list fragments in %s: %v", e.Dir, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// dirStore is a directory of fragment files. Ids are file names.
type dirStore struct {
	dir     string
	pattern string
}

func newDirStore(dir, pattern string) dirStore {
	if pattern == "" {
		pattern = defaultFragmentPattern
	}
	return dirStore{dir: dir, pattern: pattern}
}

// List returns the fragment file names in ascending byte order.
// A missing directory is not an error.
func (s dirStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StoreError{Dir: s.dir, Err: err}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := doublestar.Match(s.pattern, e.Name())
		if err != nil {
			return nil, &StoreError{Dir: s.dir, Err: fmt.Errorf("pattern %q: %w", s.pattern, err)}
		}
		if ok {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)

	return ids, nil
}

func (s dirStore) Load(id string) (*Map, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}

	frag, err := parseFragment(content)
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}
	return frag, nil
}

// parseFragment decodes and checks one fragment document.
func parseFragment(content []byte) (*Map, error) {
	v, err := decodeDocument(content)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(Scalar); ok && s.V == nil {
		return NewMap(), nil
	}

	m, ok := v.(*Map)
	if !ok {
		return nil, errors.New("fragment must be a mapping")
	}

	// default-export convention
	if keys := m.Keys(); len(keys) == 1 && keys[0] == "default" {
		inner := m.MapOf("default")
		if inner == nil {
			return nil, errors.New("default export must be a mapping")
		}
		m = inner
	}

	if err := validateFragment(m); err != nil {
		return nil, err
	}
	return m, nil
}

func validateFragment(m *Map) error {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)

		switch k {
		case keyExtends:
			if _, ok := v.(Scalar); ok {
				continue
			}
			if err := expectScalars(k, v); err != nil {
				return err
			}

		case keyTypes, keyScopes:
			if err := expectScalars(k, v); err != nil {
				return err
			}

		case keyHelpURL:
			if _, ok := v.(Scalar); !ok {
				return fmt.Errorf("%s: must be a string", k)
			}

		case keyParserPreset:
			if _, ok := v.(*Map); !ok {
				return fmt.Errorf("%s: must be a mapping", k)
			}

		case keyTypeDescriptions, keyScopeDescriptions:
			cat, ok := v.(*Map)
			if !ok {
				return fmt.Errorf("%s: must be a mapping", k)
			}
			for _, id := range cat.Keys() {
				switch e, _ := cat.Get(id); e.(type) {
				case Scalar, *Map:
				default:
					return fmt.Errorf("%s.%s: must be a description or a mapping", k, id)
				}
			}

		case keyRules:
			rules, ok := v.(*Map)
			if !ok {
				return fmt.Errorf("%s: must be a mapping", k)
			}
			for _, name := range rules.Keys() {
				e, _ := rules.Get(name)
				if _, err := ruleEntryOf(e); err != nil {
					return fmt.Errorf("rules.%s: %w", name, err)
				}
			}
		}
	}
	return nil
}

func expectScalars(key string, v Value) error {
	seq, ok := v.(Seq)
	if !ok {
		return fmt.Errorf("%s: must be a list", key)
	}
	for i, item := range seq {
		if _, ok := item.(Scalar); !ok {
			return fmt.Errorf("%s[%d]: must be a string", key, i)
		}
	}
	return nil
}
