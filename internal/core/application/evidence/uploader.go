package evidence

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"bookdesk/internal/core/ports"
	"bookdesk/internal/pkg/errs"
)

// KeyPrefix is the object-storage folder evidence images live in.
const KeyPrefix = "payments/"

// Uploader stores evidence images and returns their keys.
type Uploader struct {
	storage ports.ObjectStorage
	now     func() time.Time
}

func NewUploader(storage ports.ObjectStorage) *Uploader {
	return &Uploader{storage: storage, now: time.Now}
}

// Upload stores body under payments/<unix-millis>-<random>.jpg.
// Any failure is reported as a StorageFailureError.
func (u *Uploader) Upload(ctx context.Context, body []byte, contentType string) (string, error) {
	if len(body) == 0 {
		return "", errs.NewValueIsRequiredError("file")
	}

	key, err := u.newKey()
	if err != nil {
		return "", errs.NewStorageFailureError("put", KeyPrefix, err)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if err = u.storage.Put(ctx, key, body, contentType); err != nil {
		return "", errs.NewStorageFailureError("put", key, err)
	}
	return key, nil
}

// Discard removes an image stored by Upload that ended up referenced by no order.
func (u *Uploader) Discard(ctx context.Context, key string) error {
	if err := u.storage.Delete(ctx, key); err != nil {
		return errs.NewStorageFailureError("delete", key, err)
	}
	return nil
}

func (u *Uploader) newKey() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d-%s.jpg", KeyPrefix, u.now().UnixMilli(), hex.EncodeToString(suffix)), nil
}
