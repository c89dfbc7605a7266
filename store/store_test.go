package store_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-imapmsg/config"
	"github.com/zostay/go-imapmsg/message"
	"github.com/zostay/go-imapmsg/store"
)

func mixed(t *testing.T) *message.Message {
	t.Helper()

	m, err := message.ParseFile(filepath.Join("..", "test", "data", "mixed.eml"),
		config.New(config.WithAttachmentIDs(config.ContentHashIDs)))
	require.NoError(t, err)
	return m
}

func TestKey(t *testing.T) {
	t.Parallel()

	m := mixed(t)
	logo, ok := m.Attachments().Get("logo@example.com")
	require.True(t, ok)

	assert.Equal(t, "mixed-1@example.com/logo@example.com-logo.png", store.Key(m, logo))
}

func TestDir_SaveAll(t *testing.T) {
	t.Parallel()

	m := mixed(t)
	root := t.TempDir()

	locs, err := store.SaveAll(context.Background(), store.NewDir(root), m)
	require.NoError(t, err)
	require.Len(t, locs, 2)

	for i, a := range m.Attachments().All() {
		assert.Equal(t, filepath.Join(root, filepath.FromSlash(store.Key(m, a))), locs[i])

		got, err := os.ReadFile(locs[i])
		require.NoError(t, err)
		assert.Equal(t, a.Content(), got)
	}
}

func TestSaveAll_NoAttachments(t *testing.T) {
	t.Parallel()

	m, err := message.Make("Subject: x\r\n\r\n", "hi", nil, nil)
	require.NoError(t, err)

	_, err = store.SaveAll(context.Background(), store.NewDir(t.TempDir()), m)
	assert.ErrorIs(t, err, store.ErrNoAttachments)
}

func TestS3_Put(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)

		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPut {
			paths = append(paths, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	st, err := store.New(config.StoreSettings{
		S3: config.S3Settings{
			Bucket:    "mail",
			Region:    "us-east-1",
			Endpoint:  srv.URL,
			AccessKey: "test",
			SecretKey: "test",
			Prefix:    "/attachments/",
		},
	})
	require.NoError(t, err)

	m := mixed(t)
	logo, _ := m.Attachments().Get("logo@example.com")

	loc, err := st.Put(context.Background(), store.Key(m, logo), logo)
	require.NoError(t, err)
	assert.Equal(t, "s3://mail/attachments/mixed-1@example.com/logo@example.com-logo.png", loc)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/mail/attachments/mixed-1@example.com/logo@example.com-logo.png", paths[0])
}

func TestNewS3_NoBucket(t *testing.T) {
	t.Parallel()

	_, err := store.NewS3(config.S3Settings{})
	assert.Error(t, err)
}
