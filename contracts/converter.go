package contracts

// ConversionRequest describes one file conversion. Immutable once built;
// one instance per input file.
type ConversionRequest struct {
	InputPath    string
	OutputPath   string // optional output directory; empty means next to the source
	Format       string
	Quality      int // 1-100
	Optimize     bool
	Progressive  bool
	DeleteSource bool
}

// Outcome is the per-file result of a batch conversion attempt.
type Outcome struct {
	InputPath  string
	OutputPath string
	Err        error
}

// EncodeOptions carries the format-specific parameters handed to the codec.
type EncodeOptions struct {
	Format      string
	Quality     int
	Optimize    bool
	Progressive bool
}

// DecodedImage is an in-memory decoded picture owned by a single convert
// call. Close releases the underlying pixel buffer.
type DecodedImage interface {
	Encode(opts EncodeOptions) ([]byte, error)
	Width() int
	Height() int
	Close()
}

// Codec decodes a source container into a DecodedImage.
type Codec interface {
	Decode(path string) (DecodedImage, error)
}
