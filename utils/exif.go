package utils

import (
	"errors"
	"fmt"
	"os"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

const orientationTagName = "Orientation"

// Metadata is the parsed EXIF block of a source image.
type Metadata struct {
	raw   []byte
	index exif.IfdIndex
}

// ReadMetadata extracts and parses the EXIF block embedded in the file
// at path. A file with no EXIF yields (nil, nil); a nil *Metadata is a
// valid empty mapping for all methods below.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseMetadata(data)
}

// ParseMetadata locates and parses an EXIF block inside raw container
// bytes.
func ParseMetadata(data []byte) (*Metadata, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, fmt.Errorf("extract exif: %w", err)
	}
	return parseRaw(rawExif)
}

func parseRaw(rawExif []byte) (*Metadata, error) {
	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return nil, fmt.Errorf("load standard ifds: %w", err)
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return nil, fmt.Errorf("parse exif: %w", err)
	}
	return &Metadata{raw: rawExif, index: index}, nil
}

// Bytes returns the EXIF block in TIFF-header form, suitable for
// embedding into an output container. Nil for empty metadata.
func (m *Metadata) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.raw
}

// HasTag reports whether a tag with the given canonical name exists in
// the root IFD.
func (m *Metadata) HasTag(name string) bool {
	if m == nil {
		return false
	}
	results, err := m.index.RootIfd.FindTagWithName(name)
	return err == nil && len(results) > 0
}

// TagValue returns the first root-IFD value for the named tag.
func (m *Metadata) TagValue(name string) (interface{}, error) {
	if m == nil {
		return nil, fmt.Errorf("no metadata")
	}
	results, err := m.index.RootIfd.FindTagWithName(name)
	if err != nil || len(results) == 0 {
		return nil, fmt.Errorf("tag %s not found", name)
	}
	return results[0].Value()
}

// RemoveOrientation deletes the first Orientation tag found in the root
// IFD and re-encodes the block. Metadata without the tag is returned
// untouched, and a nil receiver is a no-op; other tags are never
// modified.
func (m *Metadata) RemoveOrientation() error {
	if m == nil {
		return nil
	}
	entries, err := m.index.RootIfd.FindTagWithName(orientationTagName)
	if err != nil || len(entries) == 0 {
		return nil
	}

	ib := exif.NewIfdBuilderFromExistingChain(m.index.RootIfd)
	if err := ib.DeleteFirst(entries[0].TagId()); err != nil {
		return fmt.Errorf("delete orientation tag: %w", err)
	}

	ibe := exif.NewIfdByteEncoder()
	updated, err := ibe.EncodeToExif(ib)
	if err != nil {
		return fmt.Errorf("re-encode exif: %w", err)
	}

	parsed, err := parseRaw(updated)
	if err != nil {
		return fmt.Errorf("re-parse exif: %w", err)
	}
	*m = *parsed
	return nil
}
