package ibl

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func hdrHeader(width, height int) []byte {
	return []byte(fmt.Sprintf("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", height, width))
}

func TestDecodeHDRFlatScanlines(t *testing.T) {
	// 2x1 flat image: (128, e=129) is 128 * 2^-7 = 1.0 in the red channel,
	// (128, e=130) doubles it in green.
	data := append(hdrHeader(2, 1),
		128, 0, 0, 129,
		0, 128, 0, 130,
	)

	img, err := DecodeHDR(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("expected 2x1, got %dx%d", img.Width, img.Height)
	}
	if abs32(img.Pix[0]-1.0) > 1e-6 || img.Pix[1] != 0 || img.Pix[2] != 0 {
		t.Errorf("pixel 0: expected (1,0,0), got (%v,%v,%v)", img.Pix[0], img.Pix[1], img.Pix[2])
	}
	if img.Pix[3] != 0 || abs32(img.Pix[4]-2.0) > 1e-6 || img.Pix[5] != 0 {
		t.Errorf("pixel 1: expected (0,2,0), got (%v,%v,%v)", img.Pix[3], img.Pix[4], img.Pix[5])
	}
}

func TestDecodeHDRAdaptiveRLE(t *testing.T) {
	// 4x1 adaptive scanline: header (2,2,hi,lo), then one RLE plane per
	// component. Mix a literal block and a run to cover both paths.
	data := append(hdrHeader(4, 1),
		2, 2, 0, 4, // scanline header
		4, 128, 128, 128, 128, // R plane: 4 literals
		128+4, 0, // G plane: run of 4 zeros
		128+4, 0, // B plane: run of 4 zeros
		4, 129, 129, 129, 129, // E plane: 4 literals
	)

	img, err := DecodeHDR(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	for x := 0; x < 4; x++ {
		r, g, b := img.Pix[x*3], img.Pix[x*3+1], img.Pix[x*3+2]
		if abs32(r-1.0) > 1e-6 || g != 0 || b != 0 {
			t.Errorf("pixel %d: expected (1,0,0), got (%v,%v,%v)", x, r, g, b)
		}
	}
}

func TestDecodeHDROldStyleRun(t *testing.T) {
	// Old-style run-length: a (1,1,1,count) pixel repeats its predecessor.
	data := append(hdrHeader(3, 1),
		128, 0, 0, 129, // first pixel, red 1.0
		1, 1, 1, 2, // repeat it twice
	)

	img, err := DecodeHDR(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	for x := 0; x < 3; x++ {
		if abs32(img.Pix[x*3]-1.0) > 1e-6 {
			t.Errorf("pixel %d red: expected 1.0, got %v", x, img.Pix[x*3])
		}
	}
}

func TestDecodeHDRZeroExponentIsBlack(t *testing.T) {
	data := append(hdrHeader(1, 1), 200, 200, 200, 0)
	img, err := DecodeHDR(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeHDR: %v", err)
	}
	if img.Pix[0] != 0 || img.Pix[1] != 0 || img.Pix[2] != 0 {
		t.Errorf("zero exponent: expected black, got (%v,%v,%v)", img.Pix[0], img.Pix[1], img.Pix[2])
	}
}

func TestDecodeHDRRejectsBadMagic(t *testing.T) {
	if _, err := DecodeHDR(strings.NewReader("PNG\r\n\x1a\n")); err == nil {
		t.Error("expected error for a non-radiance file")
	}
}

func TestDecodeHDRRejectsUnknownFormat(t *testing.T) {
	data := "#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n"
	if _, err := DecodeHDR(strings.NewReader(data)); err == nil {
		t.Error("expected error for an unsupported pixel format")
	}
}

func TestDecodeHDRRejectsBadOrientation(t *testing.T) {
	data := "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n+Y 1 +X 1\n"
	if _, err := DecodeHDR(strings.NewReader(data)); err == nil {
		t.Error("expected error for an unsupported orientation")
	}
}
