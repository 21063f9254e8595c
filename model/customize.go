// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"fmt"
	"math"
	"strings"
)

// Reserved override keys. Keys starting with "_" are skipped by the
// dispatch table; NamespaceKey is the one reserved key with meaning: it
// carries the namespace override consumed by the eager resolution of
// simple kinds.
const NamespaceKey = "_namespace"

// Customize derives a new descriptor from d with the given constraint
// overrides applied. d itself is never mutated; the result carries fresh
// Attributes and Annotations records, its orig points at the base
// descriptor of the chain, and for non-default simple kinds extends points
// back at d and the namespace is resolved immediately.
func (d *TypeDescriptor) Customize(overrides map[string]any) (*TypeDescriptor, error) {
	nd := &TypeDescriptor{
		kind:      d.kind,
		declName:  d.declName,
		declPath:  d.declPath,
		namespace: d.namespace,
		typeName:  d.typeName,
		extends:   d.extends,
		Attrs:     d.Attrs.derive(),
		Ann:       d.Ann.derive(),
	}
	if d.orig != nil {
		nd.orig = d.orig
	} else {
		nd.orig = d
	}

	// The alias pair is collected first so that conflict detection does
	// not depend on map iteration order.
	var nullable, nillable *bool
	var nsOverride string
	var typeNameSet bool

	for k, v := range overrides {
		if strings.HasPrefix(k, "_") {
			if k == NamespaceKey {
				s, ok := v.(string)
				if !ok {
					return nil, configErrorf("%s: want string, got %T", NamespaceKey, v)
				}
				nsOverride = s
			}
			continue
		}

		switch k {
		case "doc":
			s, ok := v.(string)
			if !ok {
				return nil, configErrorf("doc: want string, got %T", v)
			}
			nd.Ann.Doc = s

		case "appinfo":
			nd.Ann.AppInfo = v

		case "primary_key", "pk":
			nd.Attrs.ColumnArgs.Kwargs["primary_key"] = v

		case "prot_attrs", "pa":
			m, ok := v.(map[string]any)
			if !ok {
				return nil, configErrorf("prot_attrs: want map[string]any, got %T", v)
			}
			nd.Attrs.ProtAttrs = DecodeProtAttrs(m)

		case "foreign_key", "fk":
			s, ok := v.(string)
			if !ok {
				return nil, configErrorf("foreign_key: want string, got %T", v)
			}
			nd.Attrs.ColumnArgs.Args = append(nd.Attrs.ColumnArgs.Args, ForeignKey{Ref: s})

		case "autoincrement", "onupdate", "server_default":
			nd.Attrs.ColumnArgs.Kwargs[k] = v

		case "max_occurs":
			n, err := maxOccursValue(v)
			if err != nil {
				return nil, err
			}
			nd.Attrs.MaxOccurs = n

		case "type_name":
			s, ok := v.(string)
			if !ok {
				return nil, configErrorf("type_name: want string, got %T", v)
			}
			nd.typeName = s
			typeNameSet = true

		case "store_as":
			opt, err := ApplyStoreAs(v, DefaultStoreAsMap)
			if err != nil {
				return nil, err
			}
			nd.Attrs.StoreAs = opt

		case "nullable":
			b, ok := v.(bool)
			if !ok {
				return nil, configErrorf("nullable: want bool, got %T", v)
			}
			nullable = &b

		case "nillable":
			b, ok := v.(bool)
			if !ok {
				return nil, configErrorf("nillable: want bool, got %T", v)
			}
			nillable = &b

		default:
			if err := nd.Attrs.set(k, v); err != nil {
				return nil, err
			}
		}
	}

	if nullable != nil && nillable != nil && *nullable != *nillable {
		return nil, configErrorf("conflicting nullable=%v and nillable=%v", *nullable, *nillable)
	}
	if nullable != nil {
		nd.Attrs.SetNillable(*nullable)
	} else if nillable != nil {
		nd.Attrs.SetNillable(*nillable)
	}

	if d.kind.Simple() {
		if !nd.isDefault() {
			nd.extends = d
			if !typeNameSet {
				// Left unset so the name is derived later.
				nd.typeName = ""
			}
		}
		if _, err := nd.ResolveNamespace(nsOverride); err != nil {
			return nil, err
		}
	}

	return nd, nil
}

// set assigns a same-named constraint field. Unknown names fail with a
// ConfigurationError; there is no dynamic attribute creation.
func (a *Attributes) set(key string, v any) error {
	switch key {
	case "default":
		a.Default = v
	case "default_factory":
		f, ok := v.(func() any)
		if !ok {
			return configErrorf("default_factory: want func() any, got %T", v)
		}
		a.DefaultFactory = f
	case "min_occurs":
		n, err := intValue(key, v)
		if err != nil {
			return err
		}
		a.MinOccurs = n
	case "pattern":
		s, ok := v.(string)
		if !ok {
			return configErrorf("pattern: want string, got %T", v)
		}
		return a.SetPattern(s)
	case "values":
		vs, ok := v.([]any)
		if !ok {
			return configErrorf("values: want []any, got %T", v)
		}
		a.Values = vs
	case "schema_tag":
		return setString(key, v, &a.SchemaTag)
	case "sub_ns":
		return setString(key, v, &a.SubNS)
	case "sub_name":
		return setString(key, v, &a.SubName)
	case "translations":
		m, ok := v.(map[string]string)
		if !ok {
			return configErrorf("translations: want map[string]string, got %T", v)
		}
		a.Translations = m
	case "unique":
		a.Unique = v
	case "index":
		a.Index = v
	case "db_type":
		return setString(key, v, &a.DBType)
	case "table_name":
		return setString(key, v, &a.TableName)
	case "exc_mapper":
		return setBool(key, v, &a.ExcMapper)
	case "exc_table":
		return setBool(key, v, &a.ExcTable)
	case "exc_interface":
		return setBool(key, v, &a.ExcInterface)
	case "logged":
		return setBool(key, v, &a.Logged)
	case "read_only":
		return setBool(key, v, &a.ReadOnly)
	case "empty_is_none":
		return setBool(key, v, &a.EmptyIsNone)
	case "order":
		n, err := intValue(key, v)
		if err != nil {
			return err
		}
		o := int(n)
		a.Order = &o
	case "xml_choice_group":
		return setString(key, v, &a.XMLChoiceGroup)
	default:
		return configErrorf("unknown customization key %q", key)
	}
	return nil
}

func setString(key string, v any, dst *string) error {
	s, ok := v.(string)
	if !ok {
		return configErrorf("%s: want string, got %T", key, v)
	}
	*dst = s
	return nil
}

func setBool(key string, v any, dst *bool) error {
	b, ok := v.(bool)
	if !ok {
		return configErrorf("%s: want bool, got %T", key, v)
	}
	*dst = b
	return nil
}

func intValue(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, configErrorf("%s: want integer, got %v", key, n)
		}
		return int64(n), nil
	default:
		return 0, configErrorf("%s: want integer, got %T", key, v)
	}
}

// maxOccursValue normalizes a max_occurs override. The strings "unbounded"
// and "inf" and the floating-point infinity all map to the canonical
// Unbounded value.
func maxOccursValue(v any) (int64, error) {
	switch n := v.(type) {
	case string:
		if n == "unbounded" || n == "inf" {
			return Unbounded, nil
		}
		return 0, configErrorf("max_occurs: unknown value %q", n)
	case float64:
		if math.IsInf(n, 1) {
			return Unbounded, nil
		}
	}
	n, err := intValue("max_occurs", v)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, configErrorf("max_occurs: want a strictly positive value, got %d", n)
	}
	return n, nil
}

// String renders the descriptor for diagnostics.
func (d *TypeDescriptor) String() string {
	return fmt.Sprintf("%s(%s)", d.TypeName(), d.kind)
}
