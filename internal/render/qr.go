package render

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const DefaultQRSize = 256

// QRPNG encodes content as a PNG QR code of size x size pixels.
func QRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
