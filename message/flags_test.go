package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-imapmsg/message"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f := message.ParseFlags([]string{`\Seen`, `\Answered \Draft`, "$Forwarded", `\SEEN`, "(\\Deleted)"})

	assert.Equal(t, []string{
		message.FlagSeen,
		message.FlagAnswered,
		message.FlagDraft,
		message.FlagDeleted,
	}, f.Keys())
	assert.Equal(t, 4, f.Len())
	assert.True(t, f.Has("deleted"))
	assert.False(t, f.Has("$forwarded"))
	assert.Equal(t, `\SEEN`, f.Token(message.FlagSeen))
	assert.Equal(t, `\Answered`, f.Token(`\answered`))
}

func TestParseFlags_Empty(t *testing.T) {
	t.Parallel()

	var f message.Flags
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Has(message.FlagSeen))
	assert.Empty(t, message.ParseFlags(nil).Keys())
}
