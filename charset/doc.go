// Package charset maps the many names mail software uses for a character set
// onto canonical names and converts text in those character sets to UTF-8.
//
// The alias table is deliberately generous. Mail in the wild is labelled with
// vendor names (cp1252, x-sjis, ks_c_5601-1987), misspellings (utf8, latin1)
// and obsolete registrations. Anything the table does not know about is looked
// up through golang.org/x/text before giving up.
package charset
