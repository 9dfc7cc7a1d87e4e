package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"heic2img/contracts"
	"heic2img/utils"
)

type ConversionRequest = contracts.ConversionRequest

// testedFormats are the output formats this converter is exercised
// against. Anything else is attempted best-effort with a warning.
var testedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
}

// Engine converts one source file per Convert call.
type Engine struct {
	Codec contracts.Codec
	Log   contracts.Logger
}

func NewEngine(codec contracts.Codec, log contracts.Logger) *Engine {
	return &Engine{Codec: codec, Log: log}
}

// Convert decodes req.InputPath, strips the EXIF Orientation tag, encodes
// the pixels into req.Format and writes the result next to the source
// (or into req.OutputPath). With DeleteSource set the original is removed
// afterwards; an original already gone by then is not an error.
func (e *Engine) Convert(req ConversionRequest) error {
	format := strings.ToLower(req.Format)
	if !testedFormats[format] {
		e.Log.Warnf("Untested format: %s.", format)
	}

	img, err := e.Codec.Decode(req.InputPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", req.InputPath, err)
	}
	defer img.Close()

	meta, err := utils.ReadMetadata(req.InputPath)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	if err := meta.RemoveOrientation(); err != nil {
		return fmt.Errorf("sanitize metadata: %w", err)
	}

	outPath := ResolveOutputPath(req.InputPath, req.OutputPath, format)

	var data []byte
	if format == "pdf" {
		data, err = buildPDF(img, req.Quality)
	} else {
		data, err = img.Encode(contracts.EncodeOptions{
			Format:      format,
			Quality:     req.Quality,
			Optimize:    req.Optimize,
			Progressive: req.Progressive,
		})
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", req.InputPath, err)
	}

	switch format {
	case "jpeg":
		data, err = utils.EmbedJPEG(data, meta.Bytes())
	case "png":
		data, err = utils.EmbedPNG(data, meta.Bytes())
	}
	if err != nil {
		return fmt.Errorf("embed metadata into %s: %w", outPath, err)
	}

	if err := writeFileAtomic(outPath, data); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	e.Log.Infof("Converted %s to %s", filepath.Base(req.InputPath), outPath)

	if req.DeleteSource {
		e.Log.Infof("Deleting original file: '%s'", req.InputPath)
		if err := os.Remove(req.InputPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", req.InputPath, err)
		}
	}
	return nil
}

// writeFileAtomic writes to a sibling temp file and renames it into
// place, so a failed write never leaves a partial output behind.
func writeFileAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp%d", path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
