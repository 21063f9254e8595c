// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package model implements the type-descriptor customization engine: value
// records describing serializable types and their constraints, derivation
// of new descriptors with some constraints overridden, and namespace
// resolution assigning each descriptor a qualified identity.
package model

import (
	"reflect"
	"strings"

	"github.com/dacolabs/typedesc/xmlns"
)

// Kind tags the native representation category a descriptor binds to.
// Downstream code dispatches on this tag, not on Go type identity.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindDateTime
	KindBytes
	KindComplex
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindString:   "string",
	KindInteger:  "integer",
	KindDecimal:  "decimal",
	KindBoolean:  "boolean",
	KindDateTime: "datetime",
	KindBytes:    "bytes",
	KindComplex:  "complex",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Simple reports whether the kind follows the primitive customization
// rules: enumerated-value checking, eager namespace resolution, and the
// values-based default test.
func (k Kind) Simple() bool {
	return k != KindNull && k != KindComplex
}

// Interface is the provider a descriptor consults when rendering a
// qualified name. It is never called during namespace resolution itself.
type Interface interface {
	// GetNamespacePrefix returns the prefix for the given namespace,
	// generating one if none is defined yet.
	GetNamespacePrefix(ns string) string

	// GetTNS returns the interface's target namespace.
	GetTNS() string
}

// Annotations carries the documentation attached to a descriptor. Each
// derived descriptor gets its own copy.
type Annotations struct {
	// Doc is the public documentation for the type.
	Doc string

	// AppInfo carries any app-specific payload.
	AppInfo any

	// UseParentDoc makes a type without documentation of its own fall
	// back to the documentation of the type it extends.
	UseParentDoc bool
}

func (a *Annotations) derive() *Annotations {
	na := *a
	return &na
}

// TypeDescriptor describes a type usable in serialization. Descriptors are
// created by explicit definition (New) or derived via Customize; they are
// never mutated in place, except for the namespace-resolution phase that
// assigns their final identity.
type TypeDescriptor struct {
	kind     Kind
	declName string
	declPath string

	namespace string
	typeName  string

	orig    *TypeDescriptor
	extends *TypeDescriptor

	// Attrs is the constraint record. Never shared between descriptors.
	Attrs *Attributes

	// Ann is the annotation record. Never shared between descriptors.
	Ann *Annotations
}

// New creates a base descriptor. declPath is the dotted declaration path
// used to derive a namespace when none is assigned; path segments starting
// with "_" are private and excluded from the derived namespace. Simple
// kinds start out in the XML Schema namespace.
func New(name string, kind Kind, declPath string) *TypeDescriptor {
	d := &TypeDescriptor{
		kind:     kind,
		declName: name,
		declPath: declPath,
		Attrs:    newAttributes(),
		Ann:      &Annotations{},
	}
	if kind.Simple() {
		d.namespace = xmlns.XSD
	}
	return d
}

// Null is the descriptor for the null type.
var Null = New("Null", KindNull, "")

// Kind returns the descriptor's value-kind tag.
func (d *TypeDescriptor) Kind() Kind {
	return d.kind
}

// Namespace returns the resolved namespace, the xmlns.DefaultNS sentinel,
// or "" when unresolved.
func (d *TypeDescriptor) Namespace() string {
	return d.namespace
}

// TypeName returns the explicit type name if one was set, else the name
// the descriptor was declared with.
func (d *TypeDescriptor) TypeName() string {
	if d.typeName != "" {
		return d.typeName
	}
	return d.declName
}

// Orig returns the base descriptor this one was customized from, or nil
// for a base descriptor.
func (d *TypeDescriptor) Orig() *TypeDescriptor {
	return d.orig
}

// Extends returns the descriptor this one specializes. It is only set when
// the descriptor is not a default one.
func (d *TypeDescriptor) Extends() *TypeDescriptor {
	return d.extends
}

// isDefault reports whether the descriptor still counts as the unmodified
// base. Simple kinds compare their value set against the unconstrained
// default; everything else is always default.
func (d *TypeDescriptor) isDefault() bool {
	if !d.kind.Simple() {
		return true
	}
	return len(d.Attrs.Values) == 0
}

// NamespacePrefix returns the prefix itf assigns to this descriptor's
// namespace.
func (d *TypeDescriptor) NamespacePrefix(itf Interface) string {
	return itf.GetNamespacePrefix(d.Namespace())
}

// TypeNameNS returns the type name qualified with a namespace prefix, or
// "" when no namespace is assigned.
func (d *TypeDescriptor) TypeNameNS(itf Interface) string {
	if d.Namespace() == "" {
		return ""
	}
	return d.NamespacePrefix(itf) + ":" + d.TypeName()
}

// ElementName returns the field name used when this type is serialized
// under a complex type.
func (d *TypeDescriptor) ElementName() string {
	if d.Attrs.SubName != "" {
		return d.Attrs.SubName
	}
	return d.TypeName()
}

// ElementNameNS returns the element name qualified with a namespace
// prefix, or "" when no namespace applies.
func (d *TypeDescriptor) ElementNameNS(itf Interface) string {
	ns := d.Attrs.SubNS
	if ns == "" {
		ns = d.Namespace()
	}
	if ns == xmlns.DefaultNS {
		ns = itf.GetTNS()
	}
	if ns == "" {
		return ""
	}
	return itf.GetNamespacePrefix(ns) + ":" + d.ElementName()
}

// ValidateString reports whether an incoming string-form value is
// acceptable: it is non-nil or nulls are permitted, and it matches the
// constraint pattern when one is set. Validation is advisory; it never
// fails with an error.
func (d *TypeDescriptor) ValidateString(value any) bool {
	if value == nil {
		return d.Attrs.Nillable()
	}
	if s, ok := value.(string); ok {
		return d.Attrs.MatchesPattern(s)
	}
	return true
}

// ValidateNative reports whether a native value is acceptable: it is
// non-nil or nulls are permitted, and it is a member of the permitted
// value set when one is declared.
func (d *TypeDescriptor) ValidateNative(value any) bool {
	if value == nil {
		return d.Attrs.Nullable()
	}
	if len(d.Attrs.Values) == 0 {
		return true
	}
	for _, v := range d.Attrs.Values {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

// namespaceFromPath derives a namespace from a dotted declaration path,
// stopping at the first private segment.
func namespaceFromPath(path string) string {
	if path == "" {
		return ""
	}
	var kept []string
	for _, seg := range strings.Split(path, ".") {
		if strings.HasPrefix(seg, "_") {
			break
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, ".")
}
