package api

import (
	"bytes"
	"fmt"
	"io"

	"git.solsynth.dev/hypernet/journal/pkg/internal/media"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const DefaultMaxImageSize = 5 << 20

// sniffLength is how much of an upload http.DetectContentType looks at.
const sniffLength = 512

func (v *Handler) maxImageSize() int64 {
	if v.MaxImageSize > 0 {
		return v.MaxImageSize
	}
	return DefaultMaxImageSize
}

// storeImage saves the file in field and returns its key. No file means a nil key.
func (v *Handler) storeImage(c *fiber.Ctx, field string) (*string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil
	}
	file := files[0]

	if file.Size > v.maxImageSize() {
		return nil, services.NewValidationError(field, fmt.Sprintf("The image must not be larger than %d bytes.", v.maxImageSize()))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open upload: %v", err)
	}
	defer src.Close()

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("unable to read upload: %v", err)
	}
	head = head[:n]

	contentType, ok := media.DetectImage(head)
	if !ok {
		return nil, services.NewValidationError(field, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	key := media.NewObjectKey(file.Filename)
	if err := v.Media.Save(c.UserContext(), key, contentType, io.MultiReader(bytes.NewReader(head), src)); err != nil {
		return nil, fmt.Errorf("unable to store image: %v", err)
	}

	log.Debug().Str("key", key).Str("type", contentType).Int64("size", file.Size).Msg("Stored an uploaded image.")
	return &key, nil
}

// discardImage removes an image nothing refers to anymore. Failures only get logged.
func (v *Handler) discardImage(c *fiber.Ctx, key *string) {
	if key == nil {
		return
	}
	if err := v.Media.Delete(c.UserContext(), *key); err != nil {
		log.Warn().Err(err).Str("key", *key).Msg("Unable to delete an unused image...")
	}
}
