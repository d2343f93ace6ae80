package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const PostImageDir = "posts"

// Store persists uploaded images and maps their stored paths to public URLs.
type Store interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewStoreFromSettings builds the store selected by media.driver.
func NewStoreFromSettings() (Store, error) {
	switch driver := viper.GetString("media.driver"); driver {
	case "", "local":
		return NewLocalStore(viper.GetString("media.dir"), viper.GetString("media.base_url"))
	case "s3":
		return NewS3Store(S3Config{
			Bucket:    viper.GetString("media.s3.bucket"),
			Region:    viper.GetString("media.s3.region"),
			Endpoint:  viper.GetString("media.s3.endpoint"),
			PublicURL: viper.GetString("media.s3.public_url"),
		})
	default:
		return nil, fmt.Errorf("unknown media driver %q", driver)
	}
}

// NewObjectKey names an uploaded post image, keeping only the original extension.
func NewObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(PostImageDir, uuid.NewString()+ext)
}

// DetectImage sniffs the leading bytes of an upload and reports whether it is an image.
func DetectImage(head []byte) (string, bool) {
	contentType := http.DetectContentType(head)
	return contentType, strings.HasPrefix(contentType, "image/")
}
