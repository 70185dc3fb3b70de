package ibl

import "fmt"

// Config carries the precomputation resolutions and sample budget.
type Config struct {
	IrradianceSize int // irradiance cubemap face resolution
	PrefilterSize  int // prefiltered specular cubemap base face resolution
	PrefilterMips  int // mip levels in the prefiltered chain
	LUTSize        int // BRDF integration LUT resolution (square)
	SampleCount    int // importance samples per texel for prefilter and LUT
}

// DefaultConfig returns the production bake settings.
func DefaultConfig() Config {
	return Config{
		IrradianceSize: 32,
		PrefilterSize:  512,
		PrefilterMips:  5,
		LUTSize:        512,
		SampleCount:    1024,
	}
}

// Validate rejects configurations the bakers cannot execute.
func (c Config) Validate() error {
	if c.IrradianceSize < 1 {
		return fmt.Errorf("irradiance size must be positive, got %d", c.IrradianceSize)
	}
	if c.PrefilterMips < 2 {
		return fmt.Errorf("prefilter needs at least 2 mips, got %d", c.PrefilterMips)
	}
	if c.PrefilterSize>>(c.PrefilterMips-1) < 1 {
		return fmt.Errorf("prefilter size %d too small for %d mips", c.PrefilterSize, c.PrefilterMips)
	}
	if c.LUTSize < 1 {
		return fmt.Errorf("LUT size must be positive, got %d", c.LUTSize)
	}
	if c.SampleCount < 1 {
		return fmt.Errorf("sample count must be positive, got %d", c.SampleCount)
	}
	return nil
}
