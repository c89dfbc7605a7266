// Package message turns a raw message, as fetched from an IMAP server or read
// from a file, into a navigable Message.
//
// The pipeline runs in stages. The header is parsed first (see package
// header), then the body is split into a Structure of Parts using the
// Content-Type boundary, then each Part is classified as a body or an
// attachment. Text bodies are transfer decoded and converted to UTF-8 and
// stored by subtype. Attachments are decoded and named.
//
//	m, err := message.Make(rawHeader, rawBody, rawFlags, nil)
//	if err != nil {
//	  var perr *message.ParseError
//	  if errors.As(err, &perr) {
//	    log.Printf("failed at the %s stage", perr.Stage)
//	  }
//	  return err
//	}
//
//	fmt.Println(m.Subject())
//	fmt.Println(m.TextBody())
//	for _, a := range m.Attachments().All() {
//	  fmt.Println(a.Name(), a.Size())
//	}
//
// Parsing is forgiving. Broken encodings, unknown charsets and bad dates are
// salvaged or recorded, never fatal. Only structural problems, such as a
// missing header or a multipart body without its boundary, fail the parse.
package message
