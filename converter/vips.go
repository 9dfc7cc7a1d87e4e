package converter

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"

	"heic2img/contracts"
)

// StartupCodec initializes libvips. Call once at process start, paired
// with ShutdownCodec.
func StartupCodec() {
	vips.LoggingSettings(nil, vips.LogLevelError)
	vips.Startup(nil)
}

func ShutdownCodec() {
	vips.Shutdown()
}

// VipsCodec decodes source containers through libvips.
type VipsCodec struct{}

func (VipsCodec) Decode(path string) (contracts.DecodedImage, error) {
	ref, err := vips.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &vipsImage{ref: ref}, nil
}

type vipsImage struct {
	ref *vips.ImageRef
}

func (v *vipsImage) Width() int  { return v.ref.Width() }
func (v *vipsImage) Height() int { return v.ref.Height() }
func (v *vipsImage) Close()      { v.ref.Close() }

// Encode renders the pixels into the target format. Embedded metadata is
// always stripped here; the sanitized EXIF block is spliced back in by
// the engine.
func (v *vipsImage) Encode(opts contracts.EncodeOptions) ([]byte, error) {
	switch opts.Format {
	case "jpeg":
		p := vips.NewJpegExportParams()
		p.Quality = opts.Quality
		p.Interlace = opts.Progressive
		p.OptimizeCoding = opts.Optimize
		p.StripMetadata = true
		data, _, err := v.ref.ExportJpeg(p)
		return data, err
	case "png":
		p := vips.NewPngExportParams()
		p.Interlace = opts.Progressive
		p.StripMetadata = true
		if opts.Optimize {
			p.Compression = 9
		}
		data, _, err := v.ref.ExportPng(p)
		return data, err
	case "webp":
		p := vips.NewWebpExportParams()
		p.Quality = opts.Quality
		p.StripMetadata = true
		data, _, err := v.ref.ExportWebp(p)
		return data, err
	case "tiff":
		p := vips.NewTiffExportParams()
		p.Quality = opts.Quality
		p.StripMetadata = true
		data, _, err := v.ref.ExportTiff(p)
		return data, err
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
}
