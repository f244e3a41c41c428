package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// decodeImage verifies that data is a readable image before it is sent to
// the encoder. Only the header is parsed; the full pixel data stays untouched.
func decodeImage(data []byte) error {
	if len(data) == 0 {
		return domain.ErrImageDecode
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	return nil
}
