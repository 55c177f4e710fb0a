package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxBytes is the upload size cap.
const MaxBytes = 5 << 20 // 5MB

// LocalStore writes uploaded images to a directory on disk and serves them
// back under URLPrefix.
type LocalStore struct {
	BaseDir   string
	URLPrefix string
}

// NewLocalStore creates a disk-backed image store.
func NewLocalStore(baseDir, urlPrefix string) *LocalStore {
	return &LocalStore{BaseDir: baseDir, URLPrefix: urlPrefix}
}

// Put stores one image and returns its public URL.
func (s *LocalStore) Put(r io.Reader, filename, contentType string) (string, error) {
	ext := allowedExt(filename)
	if ext == "" || !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files up to 5MB allowed")
	}
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("img_%d_%s%s",
		time.Now().UnixMilli(),
		strings.ReplaceAll(uuid.NewString(), "-", ""),
		ext)
	dst := filepath.Join(s.BaseDir, name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxBytes)); err != nil {
		os.Remove(dst)
		return "", err
	}
	return strings.TrimRight(s.URLPrefix, "/") + "/" + name, nil
}

func allowedExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
