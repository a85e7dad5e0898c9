// Package qr renders registration QR codes as inline PNG data URLs.
package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"eventms/internal/domain"
)

const dataURLPrefix = "data:image/png;base64,"

type encoder struct {
	size int
}

// NewEncoder returns a QRGenerator that encodes payloads as size x size PNG
// data URLs. The payload is JSON so any scanner app can resolve the
// registration without a proprietary format.
func NewEncoder(size int) domain.QRGenerator {
	if size <= 0 {
		size = 256
	}
	return &encoder{size: size}
}

func (e *encoder) Encode(payload domain.QRPayload) (string, error) {
	if payload.RegistrationID == "" {
		return "", fmt.Errorf("qr payload requires a registration id")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, e.size)
	if err != nil {
		return "", fmt.Errorf("encode qr image: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// DecodePayload parses a QR payload back from its JSON text, as produced by a
// scanner reading the code. Used by staff tooling and tests.
func DecodePayload(text string) (*domain.QRPayload, error) {
	var p domain.QRPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &p); err != nil {
		return nil, fmt.Errorf("decode qr payload: %w", err)
	}
	if p.RegistrationID == "" {
		return nil, fmt.Errorf("qr payload missing registration id")
	}
	return &p, nil
}
