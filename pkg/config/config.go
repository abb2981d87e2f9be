// Package config loads and validates the engine/film property set a render
// job is configured with, TOML-backed the way noisetorch's on-disk config
// struct is: a Go struct of nested sub-tables tagged for github.com/BurntSushi/toml,
// decoded with toml.DecodeFile and validated before a CPURenderEngine ever
// starts.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// EngineType is the renderengine.type property's recognized value set.
type EngineType string

const (
	PATHCPU       EngineType = "PATHCPU"
	BIDIRCPU      EngineType = "BIDIRCPU"
	LIGHTCACHECPU EngineType = "LIGHTCACHECPU"
	TILEPATHCPU   EngineType = "TILEPATHCPU"
	PATHOCL       EngineType = "PATHOCL"
	TILEPATHOCL   EngineType = "TILEPATHOCL"
	RTPATHOCL     EngineType = "RTPATHOCL"
	FILESAVER     EngineType = "FILESAVER"
)

// SamplerType is the sampler.type property's recognized value set.
type SamplerType string

const (
	RANDOM          SamplerType = "RANDOM"
	SOBOL           SamplerType = "SOBOL"
	METROPOLIS      SamplerType = "METROPOLIS"
	TILEPATHSAMPLER SamplerType = "TILEPATHSAMPLER"
)

// FilterType is the film.filter.type property's recognized value set.
type FilterType string

const (
	FilterBox            FilterType = "BOX"
	FilterGaussian       FilterType = "GAUSSIAN"
	FilterMitchell       FilterType = "MITCHELL"
	FilterBlackmanHarris FilterType = "BLACKMANHARRIS"
)

// FilmConfig holds the film.* recognized properties.
type FilmConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	Filter struct {
		Type   FilterType `toml:"type"`
		Width  float64    `toml:"width"`
		Alpha  float64    `toml:"alpha"`
		B      float64    `toml:"B"`
		C      float64    `toml:"C"`
	} `toml:"filter"`

	NoiseEstimation struct {
		Warmup  int  `toml:"warmup"`
		Step    int  `toml:"step"`
		Enabled bool `toml:"enabled"`
	} `toml:"noiseestimation"`
}

// PathConfig holds the path.* recognized properties.
type PathConfig struct {
	MaxDepth struct {
		Total    int `toml:"total"`
		Diffuse  int `toml:"diffuse"`
		Glossy   int `toml:"glossy"`
		Specular int `toml:"specular"`
	} `toml:"maxdepth"`

	RussianRoulette struct {
		Depth int     `toml:"depth"`
		Cap   float64 `toml:"cap"`
	} `toml:"russianroulette"`

	Clamping struct {
		Variance struct {
			MaxValue float64 `toml:"maxvalue"`
		} `toml:"variance"`
	} `toml:"clamping"`

	ForceBlackBackground struct {
		Enable bool `toml:"enable"`
	} `toml:"forceblackbackground"`
}

// SamplerConfig holds the sampler.* recognized properties.
type SamplerConfig struct {
	Type SamplerType `toml:"type"`

	Metropolis struct {
		LargeStepRate       float64 `toml:"largesteprate"`
		MaxConsecutiveReject int    `toml:"maxconsecutivereject"`
		ImageMutationRate   float64 `toml:"imagemutationrate"`
	} `toml:"metropolis"`
}

// TileConfig holds the tile.*/tilepath.* recognized properties.
type TileConfig struct {
	Size struct {
		X int `toml:"x"`
		Y int `toml:"y"`
	} `toml:"size"`

	// Multipass keys beyond "enable" are written in the document as quoted
	// dotted keys within the [tile.multipass] table (e.g. "convergencetest.threshold"
	// = 0.05), since §6 names them as flat dotted properties rather than a
	// nested table.
	Multipass struct {
		Enable                        bool    `toml:"enable"`
		ConvergenceThreshold          float64 `toml:"convergencetest.threshold"`
		ConvergenceThresholdReduction float64 `toml:"convergencetest.threshold.reduction"`
		ConvergenceWarmupCount        int     `toml:"convergencetest.warmup.count"`
	} `toml:"multipass"`
}

// BatchConfig holds the batch.* halt-condition properties.
type BatchConfig struct {
	HaltTime      int     `toml:"halttime"`
	HaltSPP       int     `toml:"haltspp"`
	HaltThreshold float64 `toml:"haltthreshold"`
	HaltDebug     bool    `toml:"haltdebug"`
}

// Properties is the full recognized configuration surface: renderengine,
// native threading, path/sampler/tile tuning, batch halt conditions, and
// the film property block, decoded from one TOML document with a nested
// table per block.
type Properties struct {
	RenderEngine struct {
		Type EngineType `toml:"type"`
	} `toml:"renderengine"`

	Native struct {
		Threads struct {
			Count int `toml:"count"`
		} `toml:"threads"`
	} `toml:"native"`

	Path    PathConfig    `toml:"path"`
	Sampler SamplerConfig `toml:"sampler"`

	TilePath struct {
		Sampling struct {
			AA struct {
				Size int `toml:"size"`
			} `toml:"aa"`
		} `toml:"sampling"`
	} `toml:"tilepath"`

	Tile  TileConfig  `toml:"tile"`
	Batch BatchConfig `toml:"batch"`
	Film  FilmConfig  `toml:"film"`
}

var tileEngines = map[EngineType]bool{
	TILEPATHCPU: true,
	TILEPATHOCL: true,
	RTPATHOCL:   true,
}

var engineTypes = map[EngineType]bool{
	PATHCPU: true, BIDIRCPU: true, LIGHTCACHECPU: true, TILEPATHCPU: true,
	PATHOCL: true, TILEPATHOCL: true, RTPATHOCL: true, FILESAVER: true,
}

var samplerTypes = map[SamplerType]bool{
	RANDOM: true, SOBOL: true, METROPOLIS: true, TILEPATHSAMPLER: true,
}

var filterTypes = map[FilterType]bool{
	FilterBox: true, FilterGaussian: true, FilterMitchell: true, FilterBlackmanHarris: true,
}

// Default returns the recognized-property set's documented defaults.
func Default() *Properties {
	p := &Properties{}
	p.RenderEngine.Type = PATHCPU
	p.Sampler.Type = RANDOM
	p.Film.Width = 640
	p.Film.Height = 480
	p.Film.Filter.Type = FilterGaussian
	p.Film.Filter.Width = 2.0
	p.Path.MaxDepth.Total = 8
	p.Path.RussianRoulette.Depth = 3
	p.Path.RussianRoulette.Cap = 0.75
	p.Tile.Size.X = 64
	p.Tile.Size.Y = 64
	p.TilePath.Sampling.AA.Size = 1
	return p
}

// Load decodes path as TOML into a Properties starting from Default, then
// validates it.
func Load(path string) (*Properties, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate performs the configuration-error checks named in §7: unknown
// engine/sampler/filter name, incompatible sampler/engine pairing, and
// out-of-range numeric parameters.
func (p *Properties) Validate() error {
	if !engineTypes[p.RenderEngine.Type] {
		return fmt.Errorf("config: unknown renderengine.type %q", p.RenderEngine.Type)
	}
	if !samplerTypes[p.Sampler.Type] {
		return fmt.Errorf("config: unknown sampler.type %q", p.Sampler.Type)
	}
	if p.Film.Filter.Type != "" && !filterTypes[p.Film.Filter.Type] {
		return fmt.Errorf("config: unknown film.filter.type %q", p.Film.Filter.Type)
	}

	if tileEngines[p.RenderEngine.Type] && p.Sampler.Type != TILEPATHSAMPLER {
		return fmt.Errorf("config: renderengine.type %q requires sampler.type TILEPATHSAMPLER, got %q",
			p.RenderEngine.Type, p.Sampler.Type)
	}
	if !tileEngines[p.RenderEngine.Type] && p.Sampler.Type == TILEPATHSAMPLER {
		return fmt.Errorf("config: sampler.type TILEPATHSAMPLER requires a tile render engine, got %q",
			p.RenderEngine.Type)
	}

	if p.Film.Width <= 0 || p.Film.Height <= 0 {
		return fmt.Errorf("config: film dimensions must be positive, got %dx%d", p.Film.Width, p.Film.Height)
	}
	if p.Native.Threads.Count < 0 {
		return fmt.Errorf("config: native.threads.count must be >= 0, got %d", p.Native.Threads.Count)
	}
	if p.Path.RussianRoulette.Cap < 0 || p.Path.RussianRoulette.Cap > 1 {
		return fmt.Errorf("config: path.russianroulette.cap must be in [0,1], got %v", p.Path.RussianRoulette.Cap)
	}
	if p.Path.Clamping.Variance.MaxValue < 0 {
		return fmt.Errorf("config: path.clamping.variance.maxvalue must be >= 0, got %v", p.Path.Clamping.Variance.MaxValue)
	}
	if p.Tile.Size.X <= 0 || p.Tile.Size.Y <= 0 {
		return fmt.Errorf("config: tile.size must be positive, got %dx%d", p.Tile.Size.X, p.Tile.Size.Y)
	}
	if p.TilePath.Sampling.AA.Size <= 0 {
		return fmt.Errorf("config: tilepath.sampling.aa.size must be positive, got %d", p.TilePath.Sampling.AA.Size)
	}

	return nil
}
