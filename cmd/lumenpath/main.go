package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenpath/lumenpath/pkg/bdpt"
	"github.com/lumenpath/lumenpath/pkg/config"
	"github.com/lumenpath/lumenpath/pkg/engine"
	"github.com/lumenpath/lumenpath/pkg/film"
	"github.com/lumenpath/lumenpath/pkg/pathtracer"
	"github.com/lumenpath/lumenpath/pkg/rlog"
	"github.com/lumenpath/lumenpath/pkg/spectral"
	"github.com/lumenpath/lumenpath/pkg/tile"
)

// CLIOptions holds the command-line options for a single render run.
type CLIOptions struct {
	Width, Height int
	MaxSamples    int
	NumWorkers    int
	Integrator    string
	Output        string
	ConfigPath    string
	Help          bool
}

func main() {
	opts := parseFlags()
	if opts.Help {
		showHelp()
		return
	}

	logger, err := rlog.NewDevelopment()
	if err != nil {
		fmt.Printf("could not start logger: %v\n", err)
		os.Exit(1)
	}

	props := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Printf("error loading config: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("lumenpath: loaded properties from %s\n", opts.ConfigPath)
		props = loaded
	}

	width, height := opts.Width, opts.Height
	if props.Film.Width > 0 {
		width = props.Film.Width
	}
	if props.Film.Height > 0 {
		height = props.Film.Height
	}

	logger.Printf("lumenpath: rendering default scene at %dx%d\n", width, height)
	startTime := time.Now()

	scene := buildDefaultScene(width, height)
	cs := spectral.SRGB()
	filmCfg := film.DefaultConfig(width, height)
	applyFilmProperties(&filmCfg, props)
	f := film.NewFilm(filmCfg, cs)

	cfg := engine.DefaultConfig()
	cfg.TileMode = false
	cfg.NumWorkers = opts.NumWorkers
	cfg.MaxSamplesPerPixel = opts.MaxSamples
	applyEngineProperties(&cfg, props)

	switch opts.Integrator {
	case "bdpt":
		logger.Printf("lumenpath: using bidirectional integrator\n")
		cfg.IntegratorType = engine.Bidirectional
		cfg.BDPTConfig = bdpt.DefaultConfig()
	case "light-cache":
		logger.Printf("lumenpath: using light cache integrator\n")
		cfg.IntegratorType = engine.LightCache
		cfg.RadianceCacheConfig = engine.DefaultRadianceCacheConfig()
	case "path-tracing":
		logger.Printf("lumenpath: using path tracing integrator\n")
		cfg.IntegratorType = engine.PathTracing
		cfg.IntegratorConfig = pathtracer.DefaultConfig()
	case "":
		logger.Printf("lumenpath: using renderengine.type %q (%v)\n", props.RenderEngine.Type, cfg.IntegratorType)
	default:
		logger.Printf("lumenpath: unknown integrator %q, using renderengine.type %q\n", opts.Integrator, props.RenderEngine.Type)
	}

	eng := engine.New(cfg, scene, f, cs, logger)
	eng.Start()
	stats := eng.Wait()

	renderTime := time.Since(startTime)
	logger.Printf("lumenpath: render completed in %v (%d samples)\n", renderTime, stats.SamplesRendered)

	outputPath := opts.Output
	if err := saveImageToFile(filmToImage(f), outputPath); err != nil {
		fmt.Printf("error saving image: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("lumenpath: render saved as %s\n", outputPath)
}

// applyEngineProperties translates the recognized config.Properties surface
// into a running engine.Config, the CLI's equivalent of the original
// renderer's properties-to-RenderSession construction: renderengine.type
// selects the integrator, native.threads.count the worker count,
// path.maxdepth/russianroulette/clamping the path-tracing integrator's
// tuning, and tile.*/tilepath.* the tiled engines' partitioning.
func applyEngineProperties(cfg *engine.Config, p *config.Properties) {
	switch p.RenderEngine.Type {
	case config.BIDIRCPU:
		cfg.IntegratorType = engine.Bidirectional
		cfg.BDPTConfig = bdpt.DefaultConfig()
	case config.LIGHTCACHECPU:
		cfg.IntegratorType = engine.LightCache
		cfg.RadianceCacheConfig = engine.DefaultRadianceCacheConfig()
	default:
		cfg.IntegratorType = engine.PathTracing
		pt := pathtracer.DefaultConfig()
		if p.Path.MaxDepth.Total > 0 {
			pt.MaxDepth = p.Path.MaxDepth.Total
		}
		if p.Path.RussianRoulette.Depth > 0 {
			pt.RRStartDepth = p.Path.RussianRoulette.Depth
		}
		if p.Path.RussianRoulette.Cap > 0 {
			pt.RRImportanceCap = p.Path.RussianRoulette.Cap
		}
		pt.VarianceClampMaxValue = p.Path.Clamping.Variance.MaxValue
		pt.ForceBlackBackground = p.Path.ForceBlackBackground.Enable
		cfg.IntegratorConfig = pt
	}

	if p.Native.Threads.Count > 0 {
		cfg.NumWorkers = p.Native.Threads.Count
	}

	switch p.RenderEngine.Type {
	case config.TILEPATHCPU, config.TILEPATHOCL, config.RTPATHOCL:
		cfg.TileMode = true
	}
	if p.TilePath.Sampling.AA.Size > 0 {
		cfg.AASamples = p.TilePath.Sampling.AA.Size
	}
	if p.Batch.HaltSPP > 0 {
		cfg.MaxSamplesPerPixel = p.Batch.HaltSPP
	}

	tc := tile.DefaultConfig()
	if p.Tile.Size.X > 0 {
		tc.TileWidth = p.Tile.Size.X
		cfg.TileSize = p.Tile.Size.X
	}
	if p.Tile.Size.Y > 0 {
		tc.TileHeight = p.Tile.Size.Y
	}
	tc.EnableMultipassRendering = p.Tile.Multipass.Enable
	if p.Tile.Multipass.ConvergenceThreshold > 0 {
		tc.ConvergenceThreshold = p.Tile.Multipass.ConvergenceThreshold
	}
	if p.Tile.Multipass.ConvergenceThresholdReduction > 0 {
		tc.ConvergenceThresholdReduction = p.Tile.Multipass.ConvergenceThresholdReduction
	}
	cfg.TileConfig = tc
}

// applyFilmProperties translates the film.* recognized properties into a
// running film.Config, matching the original renderer's film reconstruction
// filter and noise-estimation convergence settings.
func applyFilmProperties(cfg *film.Config, p *config.Properties) {
	switch p.Film.Filter.Type {
	case config.FilterBox:
		cfg.FilterType = film.FilterBox
	case config.FilterMitchell:
		cfg.FilterType = film.FilterMitchell
	case config.FilterBlackmanHarris:
		cfg.FilterType = film.FilterBlackmanHarris
	case config.FilterGaussian, "":
		cfg.FilterType = film.FilterGaussian
	}
	if p.Film.Filter.Width > 0 {
		cfg.FilterWidth = p.Film.Filter.Width
	}
	if !p.Film.NoiseEstimation.Enabled {
		cfg.ConvergenceThresh = 0.0 // disabled by the property, so never converge early
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() CLIOptions {
	opts := CLIOptions{}
	flag.IntVar(&opts.Width, "width", 400, "Image width in pixels")
	flag.IntVar(&opts.Height, "height", 300, "Image height in pixels")
	flag.IntVar(&opts.MaxSamples, "max-samples", 64, "Maximum samples per pixel")
	flag.IntVar(&opts.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&opts.Integrator, "integrator", "", "Integrator type: 'path-tracing', 'bdpt', or 'light-cache' (overrides -config's renderengine.type)")
	flag.StringVar(&opts.Output, "output", filepath.Join("output", "render.png"), "Output PNG path")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML properties file (see pkg/config)")
	flag.BoolVar(&opts.Help, "help", false, "Show help information")
	flag.Parse()
	return opts
}

// showHelp displays help information.
func showHelp() {
	fmt.Println("lumenpath - physically-based Monte Carlo renderer")
	fmt.Println("Usage: lumenpath [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lumenpath --width=800 --height=600 --max-samples=128")
	fmt.Println("  lumenpath --integrator=bdpt --max-samples=256")
	fmt.Println("  lumenpath --config=scene.toml")
}

// filmToImage converts the film's accumulated group-0 pixels into a
// gamma-corrected 8-bit image, grounded on the teacher's
// Raytracer.vec3ToColor (gamma 2.0, clamp to [0,1] then scale to 255).
func filmToImage(f *film.Film) *image.RGBA {
	width, height := f.Width(), f.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	const gamma = 2.0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := f.Pixel(0, x, y)
			r := math.Pow(math.Max(0, c.R), 1/gamma)
			g := math.Pow(math.Max(0, c.G), 1/gamma)
			b := math.Pow(math.Max(0, c.B), 1/gamma)

			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * math.Min(1, r)),
				G: uint8(255 * math.Min(1, g)),
				B: uint8(255 * math.Min(1, b)),
				A: 255,
			})
		}
	}
	return img
}

// saveImageToFile saves an image to the specified file path, creating the
// output directory if it doesn't exist.
func saveImageToFile(img *image.RGBA, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
