package walk_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/message"
	"github.com/zostay/go-imapmsg/message/walk"
)

func mixed(t *testing.T) *message.Message {
	t.Helper()

	m, err := message.ParseFile(filepath.Join("..", "..", "test", "data", "mixed.eml"), nil)
	require.NoError(t, err)
	return m
}

func collect(t *testing.T, fn func(walk.Processor, *message.Message) error) []string {
	t.Helper()

	var got []string
	err := fn(func(p *message.Part) error {
		got = append(got, p.ContentType())
		return nil
	}, mixed(t))
	require.NoError(t, err)
	return got
}

func TestAndProcess(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"multipart/alternative",
		"text/plain",
		"text/html",
		"image/png",
		"application/pdf",
		"application/octet-stream",
	}, collect(t, walk.AndProcess))
}

func TestLeaves(t *testing.T) {
	t.Parallel()

	got := collect(t, walk.Leaves)
	assert.Len(t, got, 5)
	assert.NotContains(t, got, "multipart/alternative")
}

func TestContainers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"multipart/alternative"}, collect(t, walk.Containers))
}

func TestAndProcess_Stop(t *testing.T) {
	t.Parallel()

	n := 0
	err := walk.AndProcess(func(p *message.Part) error {
		n++
		if p.Type() == "image" {
			return walk.ErrStop
		}
		return nil
	}, mixed(t))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	boom := errors.New("boom")
	err = walk.Leaves(func(*message.Part) error { return boom }, mixed(t))
	assert.ErrorIs(t, err, boom)
}
