package render

import (
	"bytes"
	"image/gif"
	"image/png"
	"path/filepath"
	"slices"
	"testing"

	"ripple/internal/core"
	"ripple/internal/palette"
)

func rampGrid(w, h int) *core.ByteGrid {
	g := core.NewByteGrid(w, h)
	for i := range g.Cells() {
		g.Cells()[i] = uint8(i * 7)
	}
	return g
}

func TestColorizeMapsEveryCell(t *testing.T) {
	grid := rampGrid(37, 41)
	img := Colorize(grid, palette.Jet)

	if img.Width() != 37 || img.Height() != 41 {
		t.Fatalf("image is %dx%d", img.Width(), img.Height())
	}
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			want := palette.At(palette.Jet, grid.At(x, y))
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorizeIsDeterministicAcrossWorkers(t *testing.T) {
	grid := rampGrid(200, 150)
	ref := Colorizer{Workers: 1}.Into(nil, grid, palette.Turbo)
	for _, workers := range []int{2, 3, 8, 0} {
		got := Colorizer{Workers: workers}.Into(nil, grid, palette.Turbo)
		if !slices.Equal(ref.Pix, got.Pix) {
			t.Fatalf("workers=%d produced different pixels", workers)
		}
	}
}

func TestIntoReusesMatchingBuffer(t *testing.T) {
	grid := rampGrid(8, 6)
	dst := NewRGBImage(8, 6)
	if got := (Colorizer{}).Into(dst, grid, palette.Bone); got != dst {
		t.Fatal("matching destination was not reused")
	}
	if got := (Colorizer{}).Into(NewRGBImage(3, 3), grid, palette.Bone); got.Width() != 8 || got.Height() != 6 {
		t.Fatalf("resized destination is %dx%d", got.Width(), got.Height())
	}
}

func TestFillRGBAIsOpaque(t *testing.T) {
	img := Colorize(rampGrid(5, 4), palette.Hot)
	buf := make([]byte, 4*5*4)
	fillRGBA(buf, img)
	for i := 0; i < 20; i++ {
		if buf[i*4+3] != 0xff {
			t.Fatalf("pixel %d alpha = %d", i, buf[i*4+3])
		}
		if !bytes.Equal(buf[i*4:i*4+3], img.Pix[i*3:i*3+3]) {
			t.Fatalf("pixel %d rgb mismatch", i)
		}
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	img := Colorize(rampGrid(16, 9), palette.Ocean)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, a := decoded.At(3, 2).RGBA()
	want := img.RGBAAt(3, 2)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || a != 0xffff {
		t.Fatalf("pixel (3,2) = %d,%d,%d,%d want %v", r>>8, g>>8, b>>8, a>>8, want)
	}
}

func TestGIFRecorderStoresLevelsAsIndices(t *testing.T) {
	rec := NewGIFRecorder(palette.Winter, 4)
	var buf bytes.Buffer
	if err := rec.Encode(&buf); err == nil {
		t.Fatal("expected error encoding an empty recording")
	}

	grid := rampGrid(12, 10)
	rec.AddFrame(grid)
	grid.Fill(200)
	rec.AddFrame(grid)
	if rec.Frames() != 2 {
		t.Fatalf("recorded %d frames", rec.Frames())
	}
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 4 {
		t.Fatalf("decoded %d frames, delay %v", len(anim.Image), anim.Delay)
	}
	if idx := anim.Image[1].ColorIndexAt(5, 5); idx != 200 {
		t.Fatalf("second frame index = %d, want 200", idx)
	}
}
