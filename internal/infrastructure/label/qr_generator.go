// Package label genera etiquetas QR en PNG para productos del inventario.
package label

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRGenerator implementa usecase.LabelGenerator con skip2/go-qrcode.
type QRGenerator struct {
	size int
}

// NewQRGenerator construye el generador. Las etiquetas salen de 256x256 px,
// suficiente para lectores de mano a distancia de estante.
func NewQRGenerator() *QRGenerator {
	return &QRGenerator{size: 256}
}

// GenerateLabelPNG codifica el contenido de la etiqueta como QR y devuelve
// los bytes del PNG.
func (g *QRGenerator) GenerateLabelPNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("label: codificar QR: %w", err)
	}
	return png, nil
}
