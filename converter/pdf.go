package converter

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"heic2img/contracts"
)

// buildPDF wraps the image in a one-page PDF sized to the pixel
// dimensions, one pixel per point. The page content is a JPEG stream at
// the requested quality.
func buildPDF(img contracts.DecodedImage, quality int) ([]byte, error) {
	jpegData, err := img.Encode(contracts.EncodeOptions{Format: "jpeg", Quality: quality})
	if err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}

	w := float64(img.Width())
	h := float64(img.Height())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

	opts := gofpdf.ImageOptions{ImageType: "JPEG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("page_0", opts, bytes.NewReader(jpegData))
	pdf.ImageOptions("page_0", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
