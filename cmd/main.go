package main

import (
	"flag"
	"fmt"
	"os"

	"heic2img/contracts"
	"heic2img/converter"
	"heic2img/files_manager"
	"heic2img/logging"
)

type ConversionRequest = contracts.ConversionRequest

const programName = "heic2img"

func main() {
	inputFile := flag.String("input_file", "", "Path to a single .HEIC file to be converted")
	outputPath := flag.String("output_path", "", "Path to the output directory")
	inputDir := flag.String("input_dir", "", "Path to a directory containing .HEIC files")
	deleteSource := flag.Bool("delete", false, "Delete the original file after conversion")
	format := flag.String("format", "jpeg", "Output image format")
	quality := flag.Int("quality", 80, "Quality of the output image (1-100)")
	optimize := flag.Bool("optimize", true, "Optimize the output file size")
	progressive := flag.Bool("progressive", true, "Enable progressive image generation")
	flag.Parse()

	logger, err := logging.New(programName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR]: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if *inputFile == "" && *inputDir == "" {
		logger.Errorf("Nothing to do: provide --input_file and/or --input_dir")
		os.Exit(1)
	}

	if *quality < 1 {
		*quality = 1
	} else if *quality > 100 {
		*quality = 100
	}

	converter.StartupCodec()
	defer converter.ShutdownCodec()

	engine := converter.NewEngine(converter.VipsCodec{}, logger)

	newRequest := func(input string) ConversionRequest {
		return ConversionRequest{
			InputPath:    input,
			OutputPath:   *outputPath,
			Format:       *format,
			Quality:      *quality,
			Optimize:     *optimize,
			Progressive:  *progressive,
			DeleteSource: *deleteSource,
		}
	}

	if *inputFile != "" {
		if err := files_manager.CheckInputFile(*inputFile); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		if err := engine.Convert(newRequest(*inputFile)); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}

	if *inputDir != "" {
		if err := files_manager.CheckInputDir(*inputDir); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}

		files, err := files_manager.FindHeicFiles(*inputDir)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		logger.Infof("Found %d .HEIC files in '%s'.", len(files), *inputDir)

		requests := make([]ConversionRequest, 0, len(files))
		for _, file := range files {
			requests = append(requests, newRequest(file))
		}

		outcomes := engine.RunBatch(requests)
		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		logger.Infof("Batch finished: %d converted, %d failed.", len(outcomes)-failed, failed)
	}
}
