package render

import qrcode "github.com/skip2/go-qrcode"

// encodeQR renders a URL as a PNG symbol of the given pixel size.
// Medium recovery keeps the symbol scannable through laser toner and a
// trip through the mail.
func encodeQR(url string, size int) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, size)
}
