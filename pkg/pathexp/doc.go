// Package pathexp implements the path expressions used to bind matching rules
// and generators to locations inside a nested document.
//
// An expression is a sequence of tokens starting at the root marker:
//
//	$.animals[0].name
//	$.items[*].id
//	$.headers['Content-Type']
//	$.*
//
// Field and index tokens must match a concrete path segment exactly. The
// wildcard tokens match any single segment: "*" matches any key and "[*]"
// matches any numeric index.
//
// # Weighting
//
// When several expressions apply to the same concrete path, Weight scores how
// specific each one is. Literal tokens score 2 and wildcards score 1, and the
// score of an expression is the product of its token scores. Callers multiply
// the weight by the expression length to rank candidates, so a longer and more
// literal expression always outranks a shorter or wilder one.
package pathexp
