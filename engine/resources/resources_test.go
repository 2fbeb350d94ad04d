package resources

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func TestFallbackAtlas(t *testing.T) {
	atlas := Fallback(4)
	if len(atlas.Layers) != 4 {
		t.Fatalf("Fallback(4) has %d layers, want 4", len(atlas.Layers))
	}
	if atlas.Width != LayerSize || atlas.Height != LayerSize {
		t.Errorf("atlas size = %dx%d, want %dx%d", atlas.Width, atlas.Height, LayerSize, LayerSize)
	}

	wantMips := MipCount()
	for i, layer := range atlas.Layers {
		if len(layer.Mips) != wantMips {
			t.Fatalf("layer %d has %d mips, want %d", i, len(layer.Mips), wantMips)
		}
		size := LayerSize
		for m, pix := range layer.Mips {
			if len(pix) != size*size*4 {
				t.Fatalf("layer %d mip %d has %d bytes, want %d", i, m, len(pix), size*size*4)
			}
			size = max(size/2, 1)
		}
	}

	// Layers are distinguishable: first pixels differ between hues.
	a := atlas.Layers[0].Mips[0][:4]
	b := atlas.Layers[2].Mips[0][:4]
	if a[0] == b[0] && a[1] == b[1] && a[2] == b[2] {
		t.Error("fallback layers 0 and 2 have identical fill color")
	}
}

func TestMipCount(t *testing.T) {
	// 256 halves to 1 through 8 steps, plus the base level.
	if got := MipCount(); got != 9 {
		t.Errorf("MipCount() = %d, want 9", got)
	}
}

func writeTestPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoadResizesToLayerSize(t *testing.T) {
	dir := t.TempDir()
	red := filepath.Join(dir, "red.png")
	blue := filepath.Join(dir, "blue.png")
	writeTestPNG(t, red, color.RGBA{200, 10, 10, 255})
	writeTestPNG(t, blue, color.RGBA{10, 10, 200, 255})

	atlas := Load([]string{red, blue})
	if len(atlas.Layers) != 2 {
		t.Fatalf("loaded %d layers, want 2", len(atlas.Layers))
	}
	base := atlas.Layers[0].Mips[0]
	if len(base) != LayerSize*LayerSize*4 {
		t.Fatalf("layer 0 base mip has %d bytes, want %d", len(base), LayerSize*LayerSize*4)
	}
	// Center texel keeps the source's dominant channel after resampling.
	center := (LayerSize/2*LayerSize + LayerSize/2) * 4
	if base[center] < 100 || base[center+2] > 100 {
		t.Errorf("resized red layer center = %v, want red-dominant", base[center:center+4])
	}
}

func TestLoadDecodesByExtension(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "green.png")
	writeTestPNG(t, pngPath, color.RGBA{10, 200, 10, 255})

	tgaPath := filepath.Join(dir, "red.tga")
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{200, 10, 10, 255})
		}
	}
	f, err := os.Create(tgaPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := tga.Encode(f, img); err != nil {
		t.Fatalf("encode tga: %v", err)
	}
	f.Close()

	atlas := Load([]string{pngPath, tgaPath, filepath.Join(dir, "green.bmp")})
	if len(atlas.Layers) != 2 {
		t.Fatalf("loaded %d layers, want 2", len(atlas.Layers))
	}
	center := (LayerSize/2*LayerSize + LayerSize/2) * 4
	pngBase := atlas.Layers[0].Mips[0]
	if pngBase[center+1] < 100 {
		t.Errorf("png layer center = %v, want green-dominant", pngBase[center:center+4])
	}
	tgaBase := atlas.Layers[1].Mips[0]
	if tgaBase[center] < 100 {
		t.Errorf("tga layer center = %v, want red-dominant", tgaBase[center:center+4])
	}
}

func TestLoadSkipsBrokenFilesAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	atlas := Load([]string{filepath.Join(dir, "missing.png"), bad})
	if len(atlas.Layers) == 0 {
		t.Fatal("Load returned an empty atlas instead of the fallback")
	}
}

func TestSaveStitched(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "stitched.png")

	atlas := Fallback(3)
	if err := SaveStitched(atlas, out); err != nil {
		t.Fatalf("SaveStitched: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open stitched: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stitched: %v", err)
	}
	want := image.Rect(0, 0, LayerSize*3, LayerSize)
	if img.Bounds() != want {
		t.Errorf("stitched bounds = %v, want %v", img.Bounds(), want)
	}
}
