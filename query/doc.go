// Package query turns raw search parameters into an immutable Config.
//
// Normalization lowercases the query, decodes a literal "%20" to a space and
// splits the result into words. A query containing whitespace after decoding
// is searched in multi-word mode; otherwise the whole query is a single word.
//
// Params and ParseLine handle the "key=value&key=value" parameter line read
// from standard input.
package query
