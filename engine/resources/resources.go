// Package resources loads the face atlas textures the editor paints with.
// Source images (PNG or TGA) are decoded, resized to a common layer size,
// and expanded into RGBA8 mip chains ready for texture array upload. When no
// usable sources exist a procedural palette keeps the editor functional.
package resources

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"image/jpeg"

	"github.com/ftrvxmtrx/tga"

	xdraw "golang.org/x/image/draw"

	"github.com/pepijnd/planetary/engine/graphics"
	"github.com/pepijnd/planetary/logger"
)

// LayerSize is the edge length all atlas layers are normalized to.
const LayerSize = 256

// Atlas is a set of equally sized texture layers with mip chains, one layer
// per selectable face texture.
type Atlas struct {
	Width  uint32
	Height uint32
	Layers []graphics.ArrayLayer
}

// Load reads and decodes the images at paths into an atlas. Images that fail
// to open or decode are logged and skipped; if none survive, the procedural
// fallback is returned instead so startup never fails on assets.
//
// Parameters:
//   - paths: image files (PNG, TGA or JPEG) in layer order
//
// Returns:
//   - *Atlas: the loaded or fallback atlas, never nil
func Load(paths []string) *Atlas {
	atlas := &Atlas{Width: LayerSize, Height: LayerSize}

	for _, path := range paths {
		img, err := decodeFile(path)
		if err != nil {
			logger.Sugar.Warnw("skipping atlas image", "path", path, "error", err)
			continue
		}
		atlas.Layers = append(atlas.Layers, makeLayer(img))
		logger.Sugar.Debugw("loaded atlas layer",
			"path", filepath.Base(path), "size", img.Bounds().Size())
	}

	if len(atlas.Layers) == 0 {
		logger.Sugar.Infow("no atlas images available, using fallback palette")
		return Fallback(4)
	}
	return atlas
}

// Fallback generates a procedural palette atlas of count flat-shaded layers
// with distinct hues, each carrying a subtle border so face boundaries stay
// visible.
func Fallback(count int) *Atlas {
	atlas := &Atlas{Width: LayerSize, Height: LayerSize}
	for i := 0; i < count; i++ {
		atlas.Layers = append(atlas.Layers, makeLayer(paletteImage(i, count)))
	}
	return atlas
}

// decodeFile dispatches on the file extension. TGA has no magic bytes, so
// the decoders are called directly instead of going through image.Decode
// format sniffing.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		img, err = tga.Decode(f)
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported atlas image extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// makeLayer normalizes an image to LayerSize and builds its mip chain.
func makeLayer(img image.Image) graphics.ArrayLayer {
	base := image.NewRGBA(image.Rect(0, 0, LayerSize, LayerSize))
	xdraw.CatmullRom.Scale(base, base.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	layer := graphics.ArrayLayer{Mips: [][]byte{base.Pix}}
	prev := base
	for size := LayerSize / 2; size >= 1; size /= 2 {
		mip := image.NewRGBA(image.Rect(0, 0, size, size))
		xdraw.ApproxBiLinear.Scale(mip, mip.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		layer.Mips = append(layer.Mips, mip.Pix)
		prev = mip
	}
	return layer
}

// MipCount returns the number of mip levels for a LayerSize texture.
func MipCount() int {
	count := 1
	for size := LayerSize; size > 1; size /= 2 {
		count++
	}
	return count
}

// paletteImage renders fallback layer i of n: a flat hue with a darker border.
func paletteImage(i, n int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, LayerSize, LayerSize))
	fill := hueColor(float64(i)/float64(max(n, 1)), 1.0)
	border := hueColor(float64(i)/float64(max(n, 1)), 0.6)

	const edge = LayerSize / 16
	for y := 0; y < LayerSize; y++ {
		for x := 0; x < LayerSize; x++ {
			c := fill
			if x < edge || y < edge || x >= LayerSize-edge || y >= LayerSize-edge {
				c = border
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// hueColor maps a hue in [0,1) to an RGB color at the given brightness.
func hueColor(hue, value float64) color.RGBA {
	h := hue * 6.0
	sector := int(h) % 6
	f := h - float64(int(h))

	v := uint8(value * 255)
	p := uint8(value * 255 * 0.25)
	q := uint8(value * 255 * (1 - 0.75*f))
	t := uint8(value * 255 * (0.25 + 0.75*f))

	switch sector {
	case 0:
		return color.RGBA{v, t, p, 255}
	case 1:
		return color.RGBA{q, v, p, 255}
	case 2:
		return color.RGBA{p, v, t, 255}
	case 3:
		return color.RGBA{p, q, v, 255}
	case 4:
		return color.RGBA{t, p, v, 255}
	default:
		return color.RGBA{v, p, q, 255}
	}
}

// SaveStitched writes all atlas layers side by side into a single PNG, for
// inspecting what the editor is sampling from.
//
// Parameters:
//   - atlas: the atlas to flatten
//   - path: output PNG path
//
// Returns:
//   - error: an error if encoding or writing fails
func SaveStitched(atlas *Atlas, path string) error {
	w := int(atlas.Width)
	h := int(atlas.Height)
	out := image.NewRGBA(image.Rect(0, 0, w*len(atlas.Layers), h))

	for i, layer := range atlas.Layers {
		src := &image.RGBA{
			Pix:    layer.Mips[0],
			Stride: w * 4,
			Rect:   image.Rect(0, 0, w, h),
		}
		xdraw.Copy(out, image.Pt(i*w, 0), src, src.Bounds(), xdraw.Src, nil)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
