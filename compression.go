package heredity

import "strings"

// Compression indicates how (and whether) a pedigree file is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGzip
	CompressionZStandard
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZStandard:
		return "ZStandard"

	default:
		return "Illegal selection"
	}
}

// DetectCompression guesses the compression of a file from its extension.
func DetectCompression(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return CompressionZStandard
	}
	return CompressionDisabled
}
