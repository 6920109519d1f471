package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my profile photo.jpg", "my-profile-photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cv.pdf`, "cv.pdf"},
		{".hidden", "hidden"},
		{"..", ""},
		{"", ""},
		{"dir/", "dir"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	l := &Local{Dir: dir, URLPrefix: "/uploads/"}

	url, err := l.Store(strings.NewReader("hello"), "my photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-my-photo.png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	url2, err := l.Store(strings.NewReader("again"), "my photo.png")
	require.NoError(t, err)
	assert.NotEqual(t, url, url2, "same name gets a distinct file")
}

func TestStoreTooLarge(t *testing.T) {
	dir := t.TempDir()
	l := &Local{Dir: dir, URLPrefix: "/uploads", MaxBytes: 4}

	_, err := l.Store(bytes.NewReader([]byte("12345")), "big.bin")
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file removed")

	_, err = l.Store(bytes.NewReader([]byte("1234")), "fits.bin")
	assert.NoError(t, err)
}

func TestStoreEmptyName(t *testing.T) {
	l := &Local{Dir: t.TempDir()}
	_, err := l.Store(strings.NewReader("x"), "..")
	assert.ErrorIs(t, err, ErrEmptyName)
}
