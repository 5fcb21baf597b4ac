package cli

import (
	"bufio"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/the-wabe/panelcore/pkg/panelcore"
	"github.com/the-wabe/panelcore/pkg/raster"
)

func init() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  a  - analyze the current page for panel regions")
	fmt.Println("  o  - open another page image")
	fmt.Println("  s  - save a debug overlay of the last analysis")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// RunCLI drives the interactive panel-detection session. If an image path
// is given as the first argument it is loaded immediately; otherwise the
// session starts with no page loaded and the user opens one with 'o'.
func RunCLI() {
	if envFile := os.Getenv("PANELCORE_ENV_FILE"); envFile != "" {
		if err := LoadDotEnv(envFile); err != nil {
			log.Warn().Err(err).Str("path", envFile).Msg("could not load env file")
		}
	}

	var curImage image.Image
	var curBuffer *raster.XYZAImage
	var lastRegions []panelcore.Region

	loadPage := func(path string) {
		img, format, err := LoadImage(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to read page")
			return
		}
		curImage = img
		curBuffer = raster.FromNRGBA(toNRGBA(img))
		lastRegions = nil
		log.Info().Str("path", path).Str("format", format).
			Int("width", curBuffer.Width).Int("height", curBuffer.Height).
			Msg("page loaded")
	}

	if len(os.Args) >= 2 {
		loadPage(os.Args[1])
	}

	fmt.Println("Panel Detection CLI")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			log.Error().Err(err).Msg("read input error")
			continue
		}

		switch r {
		case 'a':
			if curBuffer == nil {
				fmt.Println("No page loaded. Press 'o' to open one first.")
				continue
			}
			params := paramsFromEnv()
			segments, err := detectSegmentsLogged(curBuffer, params)
			if err != nil {
				log.Error().Err(err).Msg("segment detection failed")
				continue
			}
			polylines := panelcore.DetectPolylines(segments, params)
			regions := panelcore.DetectRegionsFromPolylines(polylines)
			lastRegions = regions
			log.Info().
				Int("segments", len(segments)).
				Int("polylines", len(polylines)).
				Int("regions", len(regions)).
				Msg("analysis complete")
			for i, reg := range regions {
				x, y, w, h := reg.Rect()
				fmt.Printf("  region %d: x=%d y=%d w=%d h=%d\n", i+1, x, y, w, h)
			}

		case 'o':
			selected, selErr := SelectFileWithFzf(".")
			var newPath string
			if selErr != nil || selected == "" {
				newPath, _ = PromptLine("Enter path to a page image (leave empty to cancel): ")
				if newPath == "" {
					fmt.Println("open cancelled")
					continue
				}
			} else {
				newPath = selected
			}
			loadPage(newPath)

		case 's':
			if curImage == nil {
				fmt.Println("No page loaded.")
				continue
			}
			if lastRegions == nil {
				fmt.Println("No analysis yet. Press 'a' first.")
				continue
			}
			out, _ := PromptLine("Enter overlay output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			overlay := DrawRegionOverlay(curImage, lastRegions)
			if err := SaveImage(out, overlay); err != nil {
				log.Error().Err(err).Msg("failed to write overlay")
				continue
			}
			sidecar := sidecarPath(out)
			if err := os.WriteFile(sidecar, panelcore.EncodeRegions(lastRegions), 0o644); err != nil {
				log.Warn().Err(err).Msg("failed to write region sidecar")
			}
			log.Info().Str("overlay", out).Str("sidecar", sidecar).Msg("saved")

		case 'u':
			if err := CheckForUpdates(); err != nil {
				log.Error().Err(err).Msg("update check failed")
			}

		case 'h':
			usage()

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}

// toNRGBA normalizes any decoded image.Image to *image.NRGBA, the format
// raster.FromNRGBA expects.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

func sidecarPath(overlayPath string) string {
	ext := filepath.Ext(overlayPath)
	return strings.TrimSuffix(overlayPath, ext) + ".regions"
}

// detectSegmentsLogged wraps panelcore.DetectSegments with a fresh
// non-deterministic RNG and structured logging of the chosen parameters.
func detectSegmentsLogged(src *raster.XYZAImage, params panelcore.Params) ([]panelcore.Segment, error) {
	log.Debug().
		Float64("sensitivity", params.Sensitivity).
		Int("maxGap", params.MaxGap).
		Int("closeGap", params.CloseGap).
		Msg("running PPHT analysis")
	roi := raster.FullImage(src.Width, src.Height)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return panelcore.DetectSegments(src, roi, params, rng)
}

// paramsFromEnv applies PANELCORE_SENSITIVITY / PANELCORE_MAX_GAP /
// PANELCORE_CLOSE_GAP overrides on top of DefaultParams, the same
// environment-override convention LoadDotEnv exists to populate.
func paramsFromEnv() panelcore.Params {
	dict := map[string]any{}
	if v := os.Getenv("PANELCORE_SENSITIVITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			dict["sensitivity"] = f
		}
	}
	if v := os.Getenv("PANELCORE_MAX_GAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			dict["maxGap"] = n
		}
	}
	if v := os.Getenv("PANELCORE_CLOSE_GAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			dict["closeGap"] = n
		}
	}
	params, err := panelcore.ParamsFromMap(dict)
	if err != nil {
		return panelcore.DefaultParams()
	}
	return params
}
