// Package imapmsg is a client side mail parsing library. It takes messages as
// an IMAP server hands them out, a raw header and a raw body fetched
// separately, or as complete .eml blobs, and turns them into navigable
// messages: decoded headers and addresses, bodies keyed by subtype and
// attachments with their content decoded.
//
// Real world mail is frequently broken. Headers are folded badly, encoded
// words are malformed, charsets are mislabeled and boundaries go missing.
// The parsers here salvage what they can and only refuse a message when its
// structure makes no sense at all.
//
// The work is split by stage:
//
//   - header parses and decodes header blocks, including RFC 2047 encoded
//     words and RFC 2231 parameters.
//   - address parses address lists, strictly when possible and leniently
//     when not.
//   - transfer and charset undo Content-Transfer-Encoding and convert text to
//     UTF-8.
//   - message splits bodies into parts, classifies them and assembles the
//     final Message.
//   - config carries the settings every parser takes explicitly.
//
// Around those sit mask for presentable HTML, store for saving attachments,
// imapfetch for pulling messages off a server, mbox for archives and metrics
// for batch reporting.
package imapmsg
