package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// Rural ledger exports come from a mix of tools, so the charset is anything
// from UTF-8 to Windows-1252. Detection samples the head of the file and
// falls back to probing a fixed list of candidates.
const (
	detectSampleSize = 10 * 1024
	// chardet reports confidence on a 0-100 scale.
	detectMinConfidence = 70
)

var probeEncodings = []string{"utf-8", "latin1", "iso-8859-1", "cp1252"}

// DetectEncoding returns the charset name the content is most likely encoded
// in. It never fails: when detection and probing are both inconclusive it
// returns "latin1", which decodes any byte sequence.
func DetectEncoding(content []byte) string {
	sample := content
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}

	if res, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		if res.Confidence > detectMinConfidence && supportedEncoding(res.Charset) {
			return res.Charset
		}
	}

	for _, name := range probeEncodings {
		if name == "utf-8" {
			if utf8.Valid(content) {
				return name
			}
			continue
		}
		// Single-byte charsets decode everything, so the first probe
		// after UTF-8 always wins.
		return name
	}

	return "latin1"
}

// DecodeText converts raw ledger bytes to a UTF-8 string using the given
// charset name (as returned by DetectEncoding).
func DecodeText(content []byte, encoding string) string {
	switch canonicalEncoding(encoding) {
	case "utf-8":
		return string(content)
	case "cp1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(content)
		if err == nil {
			return string(out)
		}
	default:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err == nil {
			return string(out)
		}
	}
	return string(content)
}

func supportedEncoding(name string) bool {
	switch canonicalEncoding(name) {
	case "utf-8", "latin1", "cp1252":
		return true
	}
	return false
}

func canonicalEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8", "ascii", "us-ascii":
		return "utf-8"
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return "latin1"
	case "cp1252", "windows-1252":
		return "cp1252"
	default:
		return name
	}
}
