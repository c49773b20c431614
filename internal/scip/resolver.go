package scip

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQueryTooShort rejects dotted queries with fewer than two segments. The
// heuristic needs at least a type and a method to build a descriptor suffix;
// this floor is not configurable.
var ErrQueryTooShort = errors.New("scip: query needs at least two dotted segments")

// ResolveQuery converts a human-friendly dotted symbol name into the
// descriptor suffix that terminates a full SCIP symbol string.
//
// Grammar of the produced suffix:
//
//	package := segment ('/' segment)*
//	suffix  := package '/' Type '#' method '().'
//
// "com.example.Main.greet" becomes "com/example/Main#greet().". A two-segment
// query keeps the separator ("Main.greet" -> "/Main#greet()."), anchoring the
// type name at a path boundary: without it the suffix would also match nested
// classes ("Outer#Main#greet().") and any type name merely ending in the
// queried one. The suffix is matched with strings.HasSuffix against occurrence
// symbols because full SCIP symbols carry scheme/package/version metadata the
// caller does not specify.
func ResolveQuery(dottedQuery string) (string, error) {
	parts := strings.Split(dottedQuery, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrQueryTooShort, dottedQuery)
	}
	method := parts[len(parts)-1] + "()."
	typeName := parts[len(parts)-2]
	packagePath := strings.Join(parts[:len(parts)-2], "/")

	return packagePath + "/" + typeName + "#" + method, nil
}
