// Package transfer decodes and encodes the Content-Transfer-Encoding of a
// message part. Only quoted-printable and base64 change the bytes. 7bit,
// 8bit, binary and anything unrecognized pass through as-is.
//
// Decoding is forgiving. Mail servers and clients produce base64 with stray
// characters and quoted-printable with broken escapes often enough that a
// strict decoder would lose real content, so Decode salvages what it can.
package transfer
