package utils

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

// Minimal but structurally valid JPEG: SOI, APP0/JFIF, SOF0 (16x16),
// SOS, a few bytes of entropy data, EOI.
var mockJPEG = []byte{
	0xFF, 0xD8,
	0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00,
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
	0xFF, 0xC0, 0x00, 0x11, 0x08, 0x00, 0x10, 0x00, 0x10, 0x03, 0x01,
	0x11, 0x00, 0x02, 0x11, 0x01, 0x03, 0x11, 0x01,
	0xFF, 0xDA, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3F, 0x00,
	0xAA, 0xBB, 0xCC, 0xDD, 0xEE,
	0xFF, 0xD9,
}

// Minimal PNG: signature, IHDR (1x1 RGB), IEND. CRCs are not checked by
// the splicer.
func mockPNG() []byte {
	var b bytes.Buffer
	b.Write(pngMagic)

	ihdr := []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}
	b.Write(binary.BigEndian.AppendUint32(nil, uint32(len(ihdr))))
	b.WriteString("IHDR")
	b.Write(ihdr)
	b.Write(binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(append([]byte("IHDR"), ihdr...))))

	b.Write([]byte{0, 0, 0, 0})
	b.WriteString("IEND")
	b.Write(binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE([]byte("IEND"))))
	return b.Bytes()
}

func TestEmbedJPEG(t *testing.T) {
	exifData := buildExif(t, true)

	out, err := EmbedJPEG(mockJPEG, exifData)
	if err != nil {
		t.Fatalf("EmbedJPEG: %v", err)
	}

	if !bytes.Equal(out[:2], jpegSOI) {
		t.Fatal("output does not start with SOI")
	}
	if out[2] != 0xFF || out[3] != 0xE1 {
		t.Fatalf("expected APP1 marker after SOI, got %02X %02X", out[2], out[3])
	}
	segLen := int(binary.BigEndian.Uint16(out[4:6]))
	if want := 2 + len(exifPrefix) + len(exifData); segLen != want {
		t.Errorf("APP1 length = %d, want %d", segLen, want)
	}
	if !bytes.Equal(out[6:12], exifPrefix) {
		t.Error("APP1 payload does not start with Exif identifier")
	}
	if !bytes.HasSuffix(out, mockJPEG[2:]) {
		t.Error("original JPEG body not preserved after the APP1 segment")
	}

	// The spliced stream must be readable by the exif extractor.
	meta, err := ParseMetadata(out)
	if err != nil || meta == nil {
		t.Fatalf("spliced JPEG unreadable: meta=%v err=%v", meta, err)
	}
	if !meta.HasTag("Make") {
		t.Error("Make tag missing from spliced JPEG")
	}
}

func TestEmbedJPEGEmptyExif(t *testing.T) {
	out, err := EmbedJPEG(mockJPEG, nil)
	if err != nil {
		t.Fatalf("EmbedJPEG: %v", err)
	}
	if !bytes.Equal(out, mockJPEG) {
		t.Error("empty exif should leave the stream unchanged")
	}
}

func TestEmbedJPEGRejectsNonJPEG(t *testing.T) {
	if _, err := EmbedJPEG([]byte("not a jpeg"), buildExif(t, false)); err == nil {
		t.Error("expected error for non-JPEG input")
	}
}

func TestEmbedJPEGRejectsOversizedExif(t *testing.T) {
	huge := make([]byte, 0x10000)
	if _, err := EmbedJPEG(mockJPEG, huge); err == nil {
		t.Error("expected error for oversized exif block")
	}
}

func TestEmbedPNG(t *testing.T) {
	exifData := buildExif(t, true)
	png := mockPNG()

	out, err := EmbedPNG(png, exifData)
	if err != nil {
		t.Fatalf("EmbedPNG: %v", err)
	}

	ihdrEnd := 8 + 12 + 13
	if !bytes.Equal(out[:ihdrEnd], png[:ihdrEnd]) {
		t.Error("signature or IHDR modified")
	}

	chunkLen := int(binary.BigEndian.Uint32(out[ihdrEnd : ihdrEnd+4]))
	if chunkLen != len(exifData) {
		t.Errorf("eXIf chunk length = %d, want %d", chunkLen, len(exifData))
	}
	if string(out[ihdrEnd+4:ihdrEnd+8]) != "eXIf" {
		t.Fatalf("chunk after IHDR is %q, want eXIf", out[ihdrEnd+4:ihdrEnd+8])
	}
	data := out[ihdrEnd+8 : ihdrEnd+8+chunkLen]
	if !bytes.Equal(data, exifData) {
		t.Error("eXIf chunk data does not match the exif block")
	}

	gotCRC := binary.BigEndian.Uint32(out[ihdrEnd+8+chunkLen : ihdrEnd+12+chunkLen])
	wantCRC := crc32.ChecksumIEEE(append([]byte("eXIf"), exifData...))
	if gotCRC != wantCRC {
		t.Errorf("eXIf CRC = %08X, want %08X", gotCRC, wantCRC)
	}

	if !bytes.HasSuffix(out, png[ihdrEnd:]) {
		t.Error("trailing PNG chunks not preserved")
	}
}

func TestEmbedPNGEmptyExif(t *testing.T) {
	png := mockPNG()
	out, err := EmbedPNG(png, nil)
	if err != nil {
		t.Fatalf("EmbedPNG: %v", err)
	}
	if !bytes.Equal(out, png) {
		t.Error("empty exif should leave the stream unchanged")
	}
}

func TestEmbedPNGRejectsNonPNG(t *testing.T) {
	if _, err := EmbedPNG([]byte("definitely not a png"), buildExif(t, false)); err == nil {
		t.Error("expected error for non-PNG input")
	}
}
