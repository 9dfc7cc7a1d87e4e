package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

var (
	jpegSOI    = []byte{0xFF, 0xD8}
	pngMagic   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	exifPrefix = []byte("Exif\x00\x00")
)

// EmbedJPEG inserts exifData (TIFF-header form) as an APP1 segment right
// after the SOI marker. Empty exifData returns the stream unchanged.
func EmbedJPEG(jpegData, exifData []byte) ([]byte, error) {
	if len(exifData) == 0 {
		return jpegData, nil
	}
	if len(jpegData) < 2 || !bytes.Equal(jpegData[:2], jpegSOI) {
		return nil, fmt.Errorf("not a JPEG stream")
	}

	// Segment length counts the two length bytes plus the payload.
	segLen := 2 + len(exifPrefix) + len(exifData)
	if segLen > 0xFFFF {
		return nil, fmt.Errorf("exif block too large for APP1 segment: %d bytes", segLen)
	}

	out := make([]byte, 0, len(jpegData)+2+segLen)
	out = append(out, jpegSOI...)
	out = append(out, 0xFF, 0xE1)
	out = binary.BigEndian.AppendUint16(out, uint16(segLen))
	out = append(out, exifPrefix...)
	out = append(out, exifData...)
	out = append(out, jpegData[2:]...)
	return out, nil
}

// EmbedPNG inserts exifData as an eXIf chunk immediately after IHDR.
// Empty exifData returns the stream unchanged.
func EmbedPNG(pngData, exifData []byte) ([]byte, error) {
	if len(exifData) == 0 {
		return pngData, nil
	}
	if len(pngData) < len(pngMagic)+12 || !bytes.Equal(pngData[:len(pngMagic)], pngMagic) {
		return nil, fmt.Errorf("not a PNG stream")
	}

	ihdrLen := binary.BigEndian.Uint32(pngData[8:12])
	ihdrEnd := 8 + 12 + int(ihdrLen) // signature offset + length/type/CRC + data
	if ihdrEnd > len(pngData) {
		return nil, fmt.Errorf("truncated PNG stream")
	}

	chunk := make([]byte, 0, 12+len(exifData))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(exifData)))
	chunk = append(chunk, 'e', 'X', 'I', 'f')
	chunk = append(chunk, exifData...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(pngData)+len(chunk))
	out = append(out, pngData[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, pngData[ihdrEnd:]...)
	return out, nil
}
