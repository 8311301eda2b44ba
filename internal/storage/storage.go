package storage

import (
	"context"
	"io"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// PrivateUploader stores objects that must never get a public ACL.
type PrivateUploader interface {
	UploadPrivate(ctx context.Context, objectName string, contentType string, r io.Reader) error
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
