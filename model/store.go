// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// StoreAs is implemented by the serialization option records accepted by
// the store_as customization.
type StoreAs interface {
	storeAs()
}

// XMLOptions selects XML serialization for a field's contents.
type XMLOptions struct {
	// RootTag is the root tag of the element containing the field values.
	RootTag string

	// NoNS strips namespace information from the document. Use with
	// caution.
	NoNS bool

	PrettyPrint bool
}

func (XMLOptions) storeAs() {}

// TableOptions stores the instance as a row in a relational table.
type TableOptions struct {
	// Multi false configures a one-to-many relationship where the child
	// table has a foreign key to the parent. True configures a
	// many-to-many relationship through an automatically named relation
	// table; a string value names the relation table explicitly.
	Multi any

	// Left and Right name the join columns.
	Left  string
	Right string

	Backref       string
	IDBackref     string
	Cascade       any
	Lazy          string
	BackPopulates string
}

func (TableOptions) storeAs() {}

// NewTableOptions returns table options with the default lazy strategy.
func NewTableOptions() TableOptions {
	return TableOptions{Lazy: "select"}
}

// JSONOptions selects JSON serialization for a field's contents. Wrapper
// objects are not supported, so IgnoreWrappers must be true; ComplexAs
// picks the representation of complex values.
type JSONOptions struct {
	IgnoreWrappers bool
	ComplexAs      string
}

func (JSONOptions) storeAs() {}

// NewJSONOptions returns the default JSON options: wrappers ignored,
// complex values rendered as maps.
func NewJSONOptions() JSONOptions {
	return JSONOptions{IgnoreWrappers: true, ComplexAs: "map"}
}

// MsgpackOptions selects MessagePack serialization for a field's contents.
type MsgpackOptions struct{}

func (MsgpackOptions) storeAs() {}

// StoreAsMap maps store_as keys to factories producing the corresponding
// default option record.
type StoreAsMap map[string]func() StoreAs

// DefaultStoreAsMap holds the canonical store_as keys.
var DefaultStoreAsMap = StoreAsMap{
	"xml":     func() StoreAs { return XMLOptions{} },
	"table":   func() StoreAs { return NewTableOptions() },
	"json":    func() StoreAs { return NewJSONOptions() },
	"msgpack": func() StoreAs { return MsgpackOptions{} },
}

// ApplyStoreAs normalizes a caller-supplied store_as value. A known key
// yields that key's default option record; a value that already is an
// instance of one of the map's option types is returned unchanged;
// anything else fails with a ConfigurationError listing what is
// acceptable.
func ApplyStoreAs(val any, pssm StoreAsMap) (StoreAs, error) {
	if val == nil {
		return nil, nil
	}

	if key, ok := val.(string); ok {
		if f, ok := pssm[key]; ok {
			opt := f()
			if err := checkStoreAs(opt); err != nil {
				return nil, err
			}
			return opt, nil
		}
		return nil, configErrorf("store_as: unknown key %q, want one of %s", key, storeAsChoices(pssm))
	}

	opt, ok := val.(StoreAs)
	if ok {
		for _, f := range pssm {
			if reflect.TypeOf(f()) == reflect.TypeOf(opt) {
				if err := checkStoreAs(opt); err != nil {
					return nil, err
				}
				return opt, nil
			}
		}
	}
	return nil, configErrorf("store_as: want one of %s or an instance thereof, got %T", storeAsChoices(pssm), val)
}

// checkStoreAs rejects option records with settings no serializer
// implements.
func checkStoreAs(opt StoreAs) error {
	if jo, ok := opt.(JSONOptions); ok && !jo.IgnoreWrappers {
		return configErrorf("store_as: json wrapper objects are not supported, IgnoreWrappers must be true")
	}
	return nil
}

func storeAsChoices(pssm StoreAsMap) string {
	keys := make([]string, 0, len(pssm))
	for k := range pssm {
		keys = append(keys, fmt.Sprintf("%q", k))
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
