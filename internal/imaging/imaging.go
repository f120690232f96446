// Package imaging normaliza fotos enviadas (avatar, catálogo): decodifica
// JPEG/PNG, reduz para a dimensão máxima e reencoda em WebP.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	// MaxDimension limita o maior lado da imagem final.
	MaxDimension = 1024

	quality = 82
)

// Normalize lê uma imagem JPEG ou PNG e devolve os bytes WebP já
// redimensionados.
func Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imagem inválida: %w", err)
	}

	dst := resize(src, MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("falha ao codificar webp: %w", err)
	}

	return buf.Bytes(), nil
}

// resize reduz mantendo a proporção; imagens menores que o limite
// passam intactas.
func resize(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
