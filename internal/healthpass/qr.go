package healthpass

import (
	qrcode "github.com/skip2/go-qrcode"

	"healthanchor/pkg/domainerrors"
)

// QR rendering parameters are fixed so the same token always produces the
// same image. Medium error correction tolerates partly obscured prints.
const (
	qrSize = 300
)

// RenderPNG rasterizes a token into a scannable PNG.
func RenderPNG(token string) ([]byte, error) {
	if token == "" {
		return nil, domainerrors.New(domainerrors.CodeInvalidArgument, "token is required")
	}
	png, err := qrcode.Encode(token, qrcode.Medium, qrSize)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "qr rendering failed", err)
	}
	return png, nil
}
