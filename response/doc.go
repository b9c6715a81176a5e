// Package response turns ranked search results into the records printed by
// the subseek command, and renders them as JSON, a terminal table or CSV.
//
// A run always produces exactly one record: a Response on success (even when
// nothing matched) or an ErrorResponse when a precondition failed.
package response
