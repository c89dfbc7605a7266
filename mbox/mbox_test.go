package mbox_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/mbox"
	"github.com/zostay/go-imapmsg/message"
)

const box = `From alice@example.com Thu Oct 15 08:00:00 2026
Subject: one
Message-ID: <one@example.com>

first body

From bob@example.com Thu Oct 15 09:00:00 2026
Subject: two
Content-Type: multipart/mixed; boundary=nowhere

no parts here

From carol@example.com Thu Oct 15 10:00:00 2026
Subject: =?UTF-8?Q?th=C3=A9_third?=

third body
`

func TestParse(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{0, 1, 4} {
		rs, err := mbox.Parse(context.Background(), strings.NewReader(box), config.Default(), workers)
		require.NoError(t, err)
		require.Len(t, rs, 3)

		for i, r := range rs {
			assert.Equal(t, i, r.Index)
		}

		require.NoError(t, rs[0].Err)
		assert.Equal(t, "one", rs[0].Message.Subject())
		assert.Equal(t, "first body", rs[0].Message.TextBody())

		assert.ErrorIs(t, rs[1].Err, message.ErrMissingBoundary)
		assert.Nil(t, rs[1].Message)

		require.NoError(t, rs[2].Err)
		assert.Equal(t, "thé third", rs[2].Message.Subject())
		assert.Equal(t, "third body", rs[2].Message.TextBody())
	}
}

func TestParse_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rs, err := mbox.Parse(ctx, strings.NewReader(box), nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rs)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	rs, err := mbox.Parse(context.Background(), strings.NewReader(""), nil, 2)
	assert.NoError(t, err)
	assert.Empty(t, rs)
}
