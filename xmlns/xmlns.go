// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package xmlns holds the well-known XML namespaces and their conventional
// prefixes.
package xmlns

// DefaultNS marks a descriptor whose namespace is deferred to the owning
// interface's target namespace. It is replaced during namespace resolution
// and never appears in a resolved descriptor.
const DefaultNS = "__default_ns__"

// Well-known namespaces.
const (
	XML       = "http://www.w3.org/XML/1998/namespace"
	XSD       = "http://www.w3.org/2001/XMLSchema"
	XSI       = "http://www.w3.org/2001/XMLSchema-instance"
	WSA       = "http://schemas.xmlsoap.org/ws/2003/03/addressing"
	WSDL      = "http://schemas.xmlsoap.org/wsdl/"
	WSDLSoap  = "http://schemas.xmlsoap.org/wsdl/soap/"
	Soap11Env = "http://schemas.xmlsoap.org/soap/envelope/"
	Soap11Enc = "http://schemas.xmlsoap.org/soap/encoding/"
	Soap12Env = "http://www.w3.org/2003/05/soap-envelope"
	Soap12Enc = "http://www.w3.org/2003/05/soap-encoding"
	PLink     = "http://schemas.xmlsoap.org/ws/2003/05/partner-link/"
)

// PrefixMap maps each well-known namespace to its conventional prefix.
// Namespaces in this map are reserved: a customized descriptor may not keep
// one of them as its own namespace during resolution.
var PrefixMap = map[string]string{
	XML:       "xml",
	XSD:       "xs",
	XSI:       "xsi",
	WSA:       "wsa",
	WSDL:      "wsdl",
	WSDLSoap:  "soap",
	Soap11Env: "senv",
	Soap11Enc: "senc",
	Soap12Env: "s12env",
	Soap12Enc: "s12enc",
	PLink:     "plink",
}

// IsReserved reports whether ns is one of the well-known namespaces.
func IsReserved(ns string) bool {
	_, ok := PrefixMap[ns]
	return ok
}

// Prefix returns the conventional prefix for a well-known namespace, or ""
// if the namespace is not reserved.
func Prefix(ns string) string {
	return PrefixMap[ns]
}
