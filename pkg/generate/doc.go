// Package generate produces example values from contract generators and
// writes them into documents.
//
// An Engine turns a contract.Generator into a value in one of three
// representations: String for header, path and query values, Int for status
// codes and JSON for decoded document values. Generation errors are returned
// to the caller; the document handlers treat them as "keep the original
// value".
//
// # Document handlers
//
// JSONHandler resolves a path expression against a decoded JSON document.
// Wildcard tokens branch over every present child, so one expression can
// address many leaves. Each leaf is regenerated independently. A
// multi-token expression that does not resolve in the document is a no-op,
// since one template is generated against differently shaped documents.
//
// XMLHandler does the same for etree documents, where "@name" addresses an
// attribute and "#text" the text of an element.
//
// # Context
//
// Context supplies provider state values, the running mock server under the
// "mockServer" key and the base instants used by date generators under
// "baseDate", "baseTime" and "baseDateTime". The engine never modifies it.
package generate
