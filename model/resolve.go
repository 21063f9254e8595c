// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"github.com/dacolabs/typedesc/xmlns"
)

// ResolveNamespace finalizes the namespace assignment for d and its
// extends chain. The default namespace is not known until the owning
// interface is populated, which is why resolution is a separate phase
// from construction.
//
// Resolution is idempotent and cycle-safe: descriptors reachable through
// multiple chains are touched at most once per call. The return value is
// false when d was already visited in this resolution.
func (d *TypeDescriptor) ResolveNamespace(defaultNS string) (bool, error) {
	return d.resolveNamespace(defaultNS, make(map[*TypeDescriptor]struct{}))
}

func (d *TypeDescriptor) resolveNamespace(defaultNS string, visited map[*TypeDescriptor]struct{}) (bool, error) {
	if _, ok := visited[d]; ok {
		return false, nil
	}
	visited[d] = struct{}{}

	if d.namespace == xmlns.DefaultNS {
		d.namespace = defaultNS
	}

	// Reserved namespaces are reclaimed only for customized descriptors;
	// a base descriptor keeps its well-known namespace.
	if xmlns.IsReserved(d.namespace) && !d.isDefault() {
		d.namespace = defaultNS
	}

	if d.namespace == "" {
		d.namespace = namespaceFromPath(d.declPath)
	}
	if d.namespace == "" {
		d.namespace = defaultNS
	}
	if d.namespace == "" {
		return true, configErrorf("cannot resolve a namespace for %q: set one explicitly", d.TypeName())
	}

	if d.extends != nil {
		if _, err := d.extends.resolveNamespace(defaultNS, visited); err != nil {
			return true, err
		}
	}

	return true, nil
}
