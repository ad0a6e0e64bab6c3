package main

import (
	"errors"

	"github.com/rs/zerolog"
)

// Merge layers src over dst. Mappings merge key by key; any other value from
// src replaces dst outright, sequences included. Neither argument is modified.
func Merge(dst, src Value) Value {
	dm, dok := dst.(*Map)
	sm, sok := src.(*Map)
	if !dok || !sok {
		return src
	}

	out := dm.Clone()
	for _, k := range sm.Keys() {
		sv, _ := sm.Get(k)
		if dv, found := out.Get(k); found {
			out.Set(k, Merge(dv, sv))
		} else {
			out.Set(k, sv)
		}
	}
	return out
}

// MergeMaps is Merge for two mappings. A nil side counts as empty.
func MergeMaps(dst, src *Map) *Map {
	if dst == nil {
		dst = NewMap()
	}
	if src == nil {
		return dst.Clone()
	}
	return Merge(dst, src).(*Map)
}

// MergeFragments loads ids in order and folds them into one override mapping.
// A fragment that fails to load is reported and contributes nothing.
func MergeFragments(src FragmentSource, ids []string, logger zerolog.Logger) *Map {
	acc := NewMap()

	for _, id := range ids {
		frag, err := src.Load(id)
		if err != nil {
			var lerr *LoadError
			if !errors.As(err, &lerr) {
				lerr = &LoadError{ID: id, Err: err}
			}
			logger.Warn().Err(lerr.Err).Str("fragment", lerr.ID).Msg("skip fragment")
			continue
		}

		logger.Debug().Str("fragment", id).Strs("keys", frag.Keys()).Msg("merge fragment")
		acc = MergeMaps(acc, frag)
	}

	return acc
}
