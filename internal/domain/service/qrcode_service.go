package service

// QRCodeService renders payment details as a QR code image for the card
// top-up flow.
type QRCodeService interface {
	// GeneratePNG encodes the content into a PNG image.
	GeneratePNG(content string) ([]byte, error)
}
