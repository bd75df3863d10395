package language

import (
	"mime"
	"strings"
)

// mimeRemap maps MIME subtypes to grammar names where the two differ. It is
// consulted before unstructured "x-" subtypes are rejected, so the entries
// here are the only "x-" subtypes that resolve.
var mimeRemap = map[string]string{
	"tab-separated-values": "tsv",
	"x-toml":               "toml",
	"x-sh":                 "bash",
	"x-shellscript":        "bash",
	"x-python":             "python",
	"x-yaml":               "yaml",
}

// subtypeHint extracts a grammar name candidate from a content type such as
// "text/x-toml; charset=utf-8". ok is false when the content type carries
// no usable subtype.
func subtypeHint(contentType string) (hint string, ok bool) {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}

	_, subtype, found := strings.Cut(mediaType, "/")
	if !found || subtype == "" {
		return "", false
	}

	if remapped, ok := mimeRemap[subtype]; ok {
		return remapped, true
	}

	// Structured syntax suffix: "ld+json" is JSON, "svg+xml" is XML
	if i := strings.LastIndexByte(subtype, '+'); i >= 0 && i < len(subtype)-1 {
		return subtype[i+1:], true
	}

	if strings.HasPrefix(subtype, "x-") {
		return "", false
	}
	return subtype, true
}
