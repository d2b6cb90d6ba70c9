package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/rmorris/go-pathtracer/log"
	"github.com/rmorris/go-pathtracer/pkg/config"
	"github.com/rmorris/go-pathtracer/pkg/output"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
	"github.com/rmorris/go-pathtracer/pkg/scene"
)

var logger = log.New("pathtracer")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render one of the built-in sphere scenes with the recursive path tracer.
Rendering runs in parallel across image tiles; interrupting the process
stops dispatching new tiles and exits without writing a partial image.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "cover",
					Usage: "scene to render: 'cover' or 'default'",
				},
				cli.StringFlag{
					Name:  "config",
					Usage: "TOML render configuration file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height in pixels",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "maximum ray bounce depth",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base random seed for scene layout and sampling",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = CPU count)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge length in pixels",
				},
				cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "output format: 'png' or 'ppm'",
				},
				cli.StringFlag{
					Name:  "out",
					Value: "render.png",
					Usage: "output file path",
				},
			},
			Action: renderScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Debug)
	} else {
		log.SetLevel(log.Info)
	}
}

// rendererLogger adapts the leveled logger to the renderer's Printf interface
type rendererLogger struct {
	logger log.Logger
}

func (rl rendererLogger) Printf(format string, args ...interface{}) {
	rl.logger.Infof(strings.TrimRight(format, "\n"), args...)
}

func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := config.Default()
	fileLoaded := false
	if path := ctx.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		fileLoaded = true
	}

	// CLI flags take precedence over the config file
	if ctx.IsSet("width") {
		cfg.Image.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Image.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.Sampling.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("max-depth") {
		cfg.Sampling.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("tile-size") {
		cfg.Render.TileSize = ctx.Int("tile-size")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	selected, err := createScene(ctx.String("scene"), cfg)
	if err != nil {
		return err
	}

	// Sampling precedence: scene recommendation, then config file, then flags
	sampling := selected.SamplingConfig
	if fileLoaded {
		sampling = cfg.ToSamplingConfig()
	}
	if ctx.IsSet("spp") {
		sampling.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("max-depth") {
		sampling.MaxDepth = ctx.Int("max-depth")
	}

	raytracer := renderer.NewRaytracer(selected, cfg.Image.Width, cfg.Image.Height)
	raytracer.SetSamplingConfig(sampling)

	// Interrupt stops dispatching new tiles; no partial image is written
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := raytracer.Render(renderCtx, cfg.ToParallelConfig(), rendererLogger{logger})
	if err != nil {
		return err
	}

	outPath := ctx.String("out")
	if err := output.SaveImage(outPath, ctx.String("format"), img); err != nil {
		return err
	}
	logger.Infof("render saved as %s", outPath)

	displayRenderStats(stats)
	return nil
}

// createScene builds a scene by name, overlaying camera settings from the
// render configuration
func createScene(name string, cfg config.Config) (*scene.Scene, error) {
	overrides := cfg.CameraOverrides()

	switch name {
	case "cover":
		return scene.NewCoverScene(cfg.Render.Seed, overrides), nil
	case "default":
		return scene.NewDefaultScene(overrides), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (expected 'cover' or 'default')", name)
	}
}

func displayRenderStats(stats renderer.RenderStats) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Avg samples/px", "Workers", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.Workers),
		stats.Elapsed.String(),
	})
	table.Render()
}
