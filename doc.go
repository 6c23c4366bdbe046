// Package docmodel provides a dynamic, string-keyed document for building and
// inspecting loosely structured data, plus the pieces around it: dotted path
// navigation, typed accessors with a fixed coercion table, whole-document
// operations and JSON/YAML encoding. The schema subpackage validates
// documents against declarative rules.
//
// # Paths
//
// A field path is a dot-separated list of keys. A segment may carry an
// index, "items[2]", to address an element of a list or array, or an empty
// append marker, "items[*]", which appends on write:
//
//	d := docmodel.New().
//		SetString("name", "box").
//		SetInt("size.width", 3).
//		Append("tags", docmodel.FromString("a"))
//	w, err := d.Int32("size.width")
//
// Reads fail with ErrNonExistingField when a key or element is missing and
// with ErrInvalidField when a step cannot be taken (descending into a
// scalar, indexing a non-collection). Writes create missing intermediate
// documents and replace non-document values standing in the way.
//
// # Typed access
//
// Getters convert the stored value when the conversion cannot lose
// information: an int16 reads as Int64, an integer of small magnitude as
// Float64, a formatted string as Time. Anything else fails with
// ErrInvalidFieldType. Strings are never parsed into numbers.
//
// Setters return the document so calls chain; the first failing write is
// kept and reported by Err.
//
// # Probes
//
// Has, IsNull, IsString and the other Is* methods never fail. They report
// false where the corresponding read would return an error.
//
// Documents are not safe for concurrent use. Settings are read-only once
// handed to WithSettings and may be shared.
package docmodel
