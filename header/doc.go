// Package header parses a raw message or part header into attributes.
//
// Field names are normalized for lookup by lower-casing them and turning
// dashes into underscores, so "Content-Type", "content-type" and
// "content_type" all find the same attribute. The name as it appeared in the
// message is kept for display.
//
// Parsing is best effort and never fails. Problems that a caller may care
// about, such as junk before the first field or an unparseable date, are
// recorded and available from Header.Problems.
package header
