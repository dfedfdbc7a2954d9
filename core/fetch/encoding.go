package fetch

import (
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const fallbackCharset = "utf-8"

// implausibleCharsets are labels servers report by default that are almost
// never right for the target sites. They are sniffed like a missing or
// unknown label.
var implausibleCharsets = map[string]bool{
	"iso-8859-1": true,
	"latin1":     true,
	"ascii":      true,
	"us-ascii":   true,
}

// dropInvalid removes the replacement runes a decoder emits for bad input.
var dropInvalid = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == utf8.RuneError
}))

// decodeBody converts raw bytes to UTF-8 text according to mode. It always
// returns usable text; a non-nil error reports that a fallback was taken.
func decodeBody(url string, raw []byte, contentType string, mode core.EncodingMode) (string, string, error) {
	if label := mode.Legacy(); label != "" {
		return decodeLegacy(url, raw, label)
	}
	return decodeAuto(url, raw, contentType)
}

func decodeLegacy(url string, raw []byte, label string) (string, string, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return strings.ToValidUTF8(string(raw), ""), fallbackCharset, core.NewEncodingError(url, label, err)
	}
	out, _, err := transform.Bytes(transform.Chain(enc.NewDecoder(), dropInvalid), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), ""), fallbackCharset, core.NewEncodingError(url, label, err)
	}
	return string(out), canonicalName(enc, label), nil
}

func decodeAuto(url string, raw []byte, contentType string) (string, string, error) {
	label := charsetFromContentType(contentType)
	if declared, _ := charset.Lookup(label); declared == nil || implausibleCharsets[label] {
		label = detectCharset(raw)
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		enc, name = charset.Lookup(fallbackCharset)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), ""), fallbackCharset, core.NewEncodingError(url, name, err)
	}
	return string(out), name, nil
}

// charsetFromContentType returns the lower-cased charset parameter, if any.
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}

// detectCharset runs statistical detection, defaulting to UTF-8.
func detectCharset(raw []byte) string {
	if len(raw) == 0 {
		return fallbackCharset
	}
	res, err := chardet.NewHtmlDetector().DetectBest(raw)
	if err != nil || res == nil || res.Charset == "" {
		return fallbackCharset
	}
	return strings.ToLower(res.Charset)
}

func canonicalName(enc encoding.Encoding, label string) string {
	if name, err := htmlindex.Name(enc); err == nil {
		return name
	}
	return label
}
