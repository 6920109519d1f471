// Package uploads stores editor-uploaded files on local disk and hands back
// the public URL the editor pastes into content fields.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxBytes caps an upload when Local.MaxBytes is zero.
const DefaultMaxBytes = 10 << 20

// ErrTooLarge is returned when an upload exceeds the size cap.
var ErrTooLarge = errors.New("upload exceeds size limit")

// ErrEmptyName is returned when the suggested name has no usable characters.
var ErrEmptyName = errors.New("upload name is empty")

// Local writes uploads into Dir and serves them under URLPrefix.
type Local struct {
	Dir       string
	URLPrefix string // e.g. "/uploads"
	MaxBytes  int64
}

// Store writes r under a unique name derived from suggestedName and returns
// its public URL. A partial file is removed on failure.
func (l *Local) Store(r io.Reader, suggestedName string) (string, error) {
	name := Sanitize(suggestedName)
	if name == "" {
		return "", ErrEmptyName
	}

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating uploads dir: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating upload id: %w", err)
	}
	fileName := id.String() + "-" + name
	path := filepath.Join(l.Dir, fileName)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating upload: %w", err)
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	n, err := io.Copy(dst, io.LimitReader(r, limit+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return strings.TrimSuffix(l.URLPrefix, "/") + "/" + fileName, nil
}

// Sanitize reduces a client-supplied file name to its base name with
// spaces replaced by "-". Path separators and leading dots are dropped.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		return ""
	}
	return strings.Join(strings.Fields(name), "-")
}
