package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-imapmsg/address"
	"github.com/zostay/go-imapmsg/mask"
	"github.com/zostay/go-imapmsg/message"
	"github.com/zostay/go-imapmsg/message/walk"
)

var (
	inspectCmd = &cobra.Command{
		Use:   "inspect <file.eml>",
		Short: "summarize the header, bodies and attachments of a message",
		Args:  cobra.ExactArgs(1),
		Run:   Inspect,
	}

	showBodies bool
	showParts  bool
	sanitize   bool
)

func init() {
	inspectCmd.Flags().BoolVarP(&showBodies, "bodies", "b", false, "print the decoded bodies")
	inspectCmd.Flags().BoolVarP(&showParts, "parts", "p", false, "list every MIME part")
	inspectCmd.Flags().BoolVar(&sanitize, "sanitize", false, "print the HTML body sanitized, with images inlined")
}

func Inspect(_ *cobra.Command, args []string) {
	m, err := message.ParseFile(args[0], parseCfg)
	if err != nil {
		die("Failed to parse %s: %v", args[0], err)
	}

	summarize(os.Stdout, m)
}

func joinAddresses(as []address.Address) string {
	s := make([]string, len(as))
	for i, a := range as {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}

func summarize(w io.Writer, m *message.Message) {
	_, _ = fmt.Fprintf(w, "Subject:     %s\n", m.Subject())
	_, _ = fmt.Fprintf(w, "From:        %s\n", joinAddresses(m.From()))
	_, _ = fmt.Fprintf(w, "To:          %s\n", joinAddresses(m.To()))
	if cc := m.Cc(); len(cc) > 0 {
		_, _ = fmt.Fprintf(w, "Cc:          %s\n", joinAddresses(cc))
	}
	if d, err := m.Date(); err == nil {
		_, _ = fmt.Fprintf(w, "Date:        %s\n", d.Format("2006-01-02 15:04:05 -0700"))
	}
	if id := m.MessageID(); id != "" {
		_, _ = fmt.Fprintf(w, "Message-ID:  %s\n", id)
	}
	if m.Flags().Len() > 0 {
		_, _ = fmt.Fprintf(w, "Flags:       %s\n", strings.Join(m.Flags().Keys(), " "))
	}
	_, _ = fmt.Fprintf(w, "Parts:       %d (%s)\n", m.Structure().Len(), m.Structure().Type())
	_, _ = fmt.Fprintf(w, "Bodies:      %s\n", strings.Join(m.BodyKeys(), ", "))

	for _, a := range m.Attachments().All() {
		_, _ = fmt.Fprintf(w, "Attachment:  %s (%s, %d bytes, id %s)\n",
			a.Name(), a.ContentType(), a.Size(), a.ID())
	}

	for _, p := range m.Header().Problems() {
		_, _ = fmt.Fprintf(w, "Problem:     %v\n", p)
	}

	if showParts {
		_ = walk.AndProcess(func(p *message.Part) error {
			_, _ = fmt.Fprintf(w, "Part %d:      %s %s %d bytes\n",
				p.Index(), p.ContentType(), p.Encoding(), p.Bytes())
			return nil
		}, m)
	}

	if showBodies {
		for _, k := range m.BodyKeys() {
			b, _ := m.Body(k)
			_, _ = fmt.Fprintf(w, "\n--- %s ---\n%s\n", k, b)
		}
	}

	if sanitize {
		if html, ok := mask.SanitizedHTMLBody(m); ok {
			_, _ = fmt.Fprintf(w, "\n--- sanitized html ---\n%s\n", html)
		}
	}
}
