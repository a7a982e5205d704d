// Package icon renders the tray icon: the two-digit ISO week number in a
// bordered white square.
package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"runtime"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Size        = 64
	borderWidth = 2
	glyphCanvas = 16
	textInset   = 5
)

// Image draws the week number icon
func Image(week int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	// basicfont is a 7x13 bitmap face; draw at native size and scale up.
	small := image.NewRGBA(image.Rect(0, 0, glyphCanvas, glyphCanvas))
	xdraw.Draw(small, small.Bounds(), image.White, image.Point{}, xdraw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: small, Src: image.Black, Face: face}
	text := fmt.Sprintf("%02d", week%100)
	width := d.MeasureString(text).Ceil()
	d.Dot = fixed.P((glyphCanvas-width)/2, (glyphCanvas-face.Height)/2+face.Ascent)
	d.DrawString(text)

	target := image.Rect(textInset, textInset, Size-textInset, Size-textInset)
	xdraw.NearestNeighbor.Scale(img, target, small, small.Bounds(), xdraw.Over, nil)

	drawBorder(img, color.Black)
	return img
}

func drawBorder(img *image.RGBA, c color.Color) {
	for i := 0; i < Size; i++ {
		for w := 0; w < borderWidth; w++ {
			img.Set(i, w, c)
			img.Set(i, Size-1-w, c)
			img.Set(w, i, c)
			img.Set(Size-1-w, i, c)
		}
	}
}

// PNG returns the icon encoded as PNG
func PNG(week int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(week)); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// ICO wraps PNG data in a single-image ICO container
func ICO(pngData []byte) []byte {
	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // image count
	// ICONDIRENTRY
	buf.WriteByte(Size)
	buf.WriteByte(Size)
	buf.WriteByte(0) // palette
	buf.WriteByte(0) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // color planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(pngData)
	return buf.Bytes()
}

// ForTray returns icon bytes in the format the platform tray expects
func ForTray(week int) ([]byte, error) {
	data, err := PNG(week)
	if err != nil {
		return nil, err
	}
	if runtime.GOOS == "windows" {
		return ICO(data), nil
	}
	return data, nil
}
