package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

const userTagSize = 256

// QRService renders the printable tag collectors scan to identify a
// household or business on a pickup.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

// UserTagPayload is the content encoded in a user tag.
type UserTagPayload struct {
	UserID string `json:"userId"`
	Ward   string `json:"ward"`
}

// UserTagPNG returns a PNG QR code that encodes the user id and ward.
func (s *QRService) UserTagPNG(userID, ward string) ([]byte, error) {
	payload, err := json.Marshal(UserTagPayload{UserID: userID, Ward: ward})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("build qr for %s: %w", userID, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(userTagSize)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
