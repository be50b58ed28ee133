package otp

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/pquerna/otp"
)

// QRDataURI renders a provisioning URI as a PNG QR code wrapped in a data URI,
// ready for an <img src> attribute.
func QRDataURI(uri string, size int) (string, error) {
	if size <= 0 {
		size = 200
	}

	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", err
	}

	img, err := key.Image(size, size)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
