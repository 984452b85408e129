package fsutil

import "bytes"

// utf16/32 byte order marks. Content starting with one is not UTF-8 text.
var wideBOMs = [][]byte{
	{0x00, 0x00, 0xFE, 0xFF},
	{0xFF, 0xFE, 0x00, 0x00},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

// SystemBinaryDetector decides whether file content can be searched as UTF-8 text.
type SystemBinaryDetector struct {
	SampleSize int // bytes inspected for NUL
}

// NewSystemBinaryDetector creates a detector that samples the first sampleSize bytes.
func NewSystemBinaryDetector(sampleSize int) *SystemBinaryDetector {
	return &SystemBinaryDetector{SampleSize: sampleSize}
}

// IsBinaryContent reports true for a UTF-16/32 byte order mark or a NUL byte
// within the sample window.
func (d *SystemBinaryDetector) IsBinaryContent(content []byte) bool {
	for _, bom := range wideBOMs {
		if bytes.HasPrefix(content, bom) {
			return true
		}
	}
	sample := content[:min(len(content), d.SampleSize)]
	return bytes.IndexByte(sample, 0) >= 0
}
