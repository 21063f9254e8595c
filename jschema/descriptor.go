// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema builds type descriptors from JSON Schema documents.
package jschema

import (
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/typedesc/model"
)

// Field pairs a property name with the descriptor built for it.
type Field struct {
	Name string
	Desc *model.TypeDescriptor
}

// Descriptor builds a descriptor for a named schema. ns seeds the eager
// namespace resolution of customized simple types; leave it empty only
// for schemas without enum or similar specializing constraints.
func Descriptor(ns, name string, s *jsonschema.Schema) (*model.TypeDescriptor, error) {
	return property(ns, name, s, s, false)
}

// Fields builds a descriptor for each property of an object schema.
// Properties are visited in name order so the result is deterministic.
func Fields(ns string, s *jsonschema.Schema) ([]Field, error) {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		required := false
		for _, req := range s.Required {
			if req == name {
				required = true
				break
			}
		}
		d, err := property(ns, name, s.Properties[name], s, required)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Desc: d})
	}
	return fields, nil
}

// Definitions builds a descriptor for each entry under $defs, in name
// order.
func Definitions(ns string, s *jsonschema.Schema) ([]Field, error) {
	names := make([]string, 0, len(s.Defs))
	for name := range s.Defs {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]Field, 0, len(names))
	for _, name := range names {
		d, err := property(ns, name, s.Defs[name], s, false)
		if err != nil {
			return nil, err
		}
		defs = append(defs, Field{Name: name, Desc: d})
	}
	return defs, nil
}

func property(ns, name string, s, root *jsonschema.Schema, required bool) (*model.TypeDescriptor, error) {
	// Local $refs resolve against the root's $defs.
	if s.Ref != "" {
		if target, ok := root.Defs[defName(s.Ref)]; ok {
			s = target
		}
	}

	ov := make(map[string]any)
	if required {
		ov["min_occurs"] = 1
		ov["nillable"] = false
	} else {
		ov["nillable"] = true
	}

	// Arrays become descriptors of the element type with occurrence
	// bounds instead of a distinct collection kind.
	item := s
	if s.Type == "array" && s.Items != nil {
		item = s.Items
		ov["max_occurs"] = "unbounded"
		if s.MaxItems != nil {
			ov["max_occurs"] = *s.MaxItems
		}
		if s.MinItems != nil {
			ov["min_occurs"] = *s.MinItems
		}
		if item.Ref != "" {
			if target, ok := root.Defs[defName(item.Ref)]; ok {
				item = target
			}
		}
	}

	if item.Pattern != "" {
		ov["pattern"] = item.Pattern
	}
	if len(item.Enum) > 0 {
		ov["values"] = item.Enum
	}
	if item.Description != "" {
		ov["doc"] = item.Description
	}
	if ns != "" {
		ov[model.NamespaceKey] = ns
	}

	base := model.New(name, kindOf(item), "")
	return base.Customize(ov)
}

func kindOf(s *jsonschema.Schema) model.Kind {
	switch s.Format {
	case "date-time", "date", "time":
		return model.KindDateTime
	case "byte", "binary":
		return model.KindBytes
	}
	switch s.Type {
	case "string":
		return model.KindString
	case "integer":
		return model.KindInteger
	case "number":
		return model.KindDecimal
	case "boolean":
		return model.KindBoolean
	case "null":
		return model.KindNull
	case "object":
		return model.KindComplex
	default:
		if len(s.Properties) > 0 {
			return model.KindComplex
		}
		return model.KindString
	}
}

func defName(ref string) string {
	if name, ok := strings.CutPrefix(ref, "#/$defs/"); ok {
		return name
	}
	return ref
}
