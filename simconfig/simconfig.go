// Package simconfig loads the simulator's run configuration: a flat
// key=value text file with '#' comments, parsed with gopkg.in/ini.v1 the
// way the rest of this module's ambient stack leans on established
// third-party parsers rather than hand-rolled scanners.
package simconfig

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Config holds every recognised key from the run configuration file.
type Config struct {
	TimeTotal    float64
	LogFrequency int
	SaveFrequency int
	EdgeLength   float64
	MtMassIni    int
	SegMassIni   int

	UseFission   bool
	RateFission  float64

	Use11Fusion    bool
	FusionRate11   float64
	Use12Fusion    bool
	FusionRate12   float64
	Use1LFusion    bool
	FusionRate1L   float64
}

// Load parses the configuration file at path and validates every
// recognised key's range.
func Load(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("simconfig: loading %s: %w", path, err)
	}

	sec := f.Section("")
	cfg := &Config{
		TimeTotal:     sec.Key("timeTotal").MustFloat64(0),
		LogFrequency:  sec.Key("logFrequency").MustInt(1),
		SaveFrequency: sec.Key("saveFrequency").MustInt(1),
		EdgeLength:    sec.Key("edgeLength").MustFloat64(0),
		MtMassIni:     sec.Key("mtmassini").MustInt(1),
		SegMassIni:    sec.Key("segmassini").MustInt(1),

		UseFission:  sec.Key("use_fission").MustBool(false),
		RateFission: sec.Key("rate_fission").MustFloat64(0),

		Use11Fusion:  sec.Key("use_11_fusion").MustBool(false),
		FusionRate11: sec.Key("fusion_rate_11").MustFloat64(0),
		Use12Fusion:  sec.Key("use_12_fusion").MustBool(false),
		FusionRate12: sec.Key("fusion_rate_12").MustFloat64(0),
		Use1LFusion:  sec.Key("use_1L_fusion").MustBool(false),
		FusionRate1L: sec.Key("fusion_rate_1L").MustFloat64(0),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("simconfig: %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.TimeTotal < 0:
		return fmt.Errorf("timeTotal must be >= 0, got %v", c.TimeTotal)
	case c.LogFrequency < 1:
		return fmt.Errorf("logFrequency must be >= 1, got %v", c.LogFrequency)
	case c.SaveFrequency < 1:
		return fmt.Errorf("saveFrequency must be >= 1, got %v", c.SaveFrequency)
	case c.EdgeLength < 0:
		return fmt.Errorf("edgeLength must be >= 0, got %v", c.EdgeLength)
	case c.MtMassIni < 1:
		return fmt.Errorf("mtmassini must be >= 1, got %v", c.MtMassIni)
	case c.SegMassIni < 1:
		return fmt.Errorf("segmassini must be >= 1, got %v", c.SegMassIni)
	case c.RateFission < 0:
		return fmt.Errorf("rate_fission must be >= 0, got %v", c.RateFission)
	case c.FusionRate11 < 0:
		return fmt.Errorf("fusion_rate_11 must be >= 0, got %v", c.FusionRate11)
	case c.FusionRate12 < 0:
		return fmt.Errorf("fusion_rate_12 must be >= 0, got %v", c.FusionRate12)
	case c.FusionRate1L < 0:
		return fmt.Errorf("fusion_rate_1L must be >= 0, got %v", c.FusionRate1L)
	}

	return nil
}
