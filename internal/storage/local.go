package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/workflow"
)

// LocalProofStore writes proof images to a directory served by the API.
// The workflow only sees opaque URL references, so swapping this for an
// object store is a constructor change.
type LocalProofStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalProofStore creates a proof store rooted at dir. baseURL is the
// public path prefix the files are served under (e.g. /uploads).
func NewLocalProofStore(dir, baseURL string, logger *zap.Logger) (*LocalProofStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalProofStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload stores the file under a generated name and returns its URL.
// The caller is responsible for type/size validation; this store trusts
// its input.
func (s *LocalProofStore) Upload(ctx context.Context, f *workflow.ProofFile) (string, error) {
	name := uuid.New().String() + extensionFor(f.ContentType)
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, f.Content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write proof file: %w", err)
	}

	s.logger.Debug("Stored proof file",
		zap.String("name", name),
		zap.String("content_type", f.ContentType),
		zap.Int64("size", f.Size),
	)

	return s.baseURL + "/" + name, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
