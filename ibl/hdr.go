package ibl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
)

// DecodeHDR reads a Radiance (.hdr / RGBE) image into a floating-point
// equirectangular panorama. Both flat scanlines and the adaptive RLE
// encoding are supported.
func DecodeHDR(r io.Reader) (*EquirectImage, error) {
	br := bufio.NewReader(r)

	magic, err := readHDRLine(br)
	if err != nil {
		return nil, fmt.Errorf("radiance header: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("not a radiance file: %q", magic)
	}

	// Header lines until the blank separator. FORMAT is the only variable
	// we validate; everything else (EXPOSURE, comments) is ignored.
	format := ""
	for {
		line, err := readHDRLine(br)
		if err != nil {
			return nil, fmt.Errorf("radiance header: %w", err)
		}
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "FORMAT=") {
			format = strings.TrimPrefix(line, "FORMAT=")
		}
	}
	if format != "" && format != "32-bit_rle_rgbe" {
		return nil, fmt.Errorf("unsupported radiance format %q", format)
	}

	var height, width int
	resLine, err := readHDRLine(br)
	if err != nil {
		return nil, fmt.Errorf("radiance resolution: %w", err)
	}
	if _, err := fmt.Sscanf(resLine, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("unsupported radiance orientation %q", resLine)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid radiance dimensions %dx%d", width, height)
	}

	img := &EquirectImage{Width: width, Height: height, Pix: make([]float32, width*height*3)}
	scanline := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readHDRScanline(br, scanline, width); err != nil {
			return nil, fmt.Errorf("radiance scanline %d: %w", y, err)
		}
		row := img.Pix[y*width*3:]
		for x := 0; x < width; x++ {
			r, g, b := rgbeToFloat(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
			row[x*3+0] = r
			row[x*3+1] = g
			row[x*3+2] = b
		}
	}
	return img, nil
}

func readHDRLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readHDRScanline fills dst (width RGBE quadruples, interleaved).
func readHDRScanline(br *bufio.Reader, dst []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return err
	}

	// Adaptive RLE scanlines start with 2, 2, width-hi, width-lo and store
	// the four components as separate RLE planes.
	if head[0] == 2 && head[1] == 2 && int(head[2])<<8|int(head[3]) == width {
		plane := make([]byte, width)
		for c := 0; c < 4; c++ {
			for x := 0; x < width; {
				count, err := br.ReadByte()
				if err != nil {
					return err
				}
				if count > 128 { // run
					run := int(count) - 128
					if x+run > width {
						return fmt.Errorf("rle run overflows scanline")
					}
					val, err := br.ReadByte()
					if err != nil {
						return err
					}
					for i := 0; i < run; i++ {
						plane[x+i] = val
					}
					x += run
				} else { // literals
					n := int(count)
					if n == 0 || x+n > width {
						return fmt.Errorf("rle literal overflows scanline")
					}
					if _, err := io.ReadFull(br, plane[x:x+n]); err != nil {
						return err
					}
					x += n
				}
			}
			for x := 0; x < width; x++ {
				dst[x*4+c] = plane[x]
			}
		}
		return nil
	}

	// Flat (or old-style run-length) scanline: head already holds the
	// first pixel.
	copy(dst[:4], head[:])
	for x := 1; x < width; x++ {
		if _, err := io.ReadFull(br, dst[x*4:x*4+4]); err != nil {
			return err
		}
		// Old-style runs repeat the previous pixel (1,1,1,count).
		if dst[x*4] == 1 && dst[x*4+1] == 1 && dst[x*4+2] == 1 {
			run := int(dst[x*4+3])
			prev := dst[(x-1)*4 : x*4]
			for i := 0; i < run && x < width; i++ {
				copy(dst[x*4:x*4+4], prev)
				x++
			}
			x--
		}
	}
	return nil
}

// rgbeToFloat expands a shared-exponent RGBE pixel to linear floats.
func rgbeToFloat(r, g, b, e byte) (fr, fg, fb float32) {
	if e == 0 {
		return 0, 0, 0
	}
	scale := math32.Ldexp(1, int(e)-(128+8))
	return float32(r) * scale, float32(g) * scale, float32(b) * scale
}
