package wire

import "strings"

const (
	MIMEHTML   = "text/html"
	MIMEXHTML  = "application/xhtml+xml"
	MIMESVG    = "image/svg+xml"
	MIMEMathML = "application/mathml+xml"
	MIMEXML    = "application/xml"
)

// NormalizeMIME maps the MIME type spellings parsers accept onto the
// canonical content types carried by wire documents. Anything unrecognized
// is treated as generic XML.
func NormalizeMIME(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(m, ';'); i != -1 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case "text/html", "text/html4", "text/html5":
		return MIMEHTML
	case "text/xhtml", "application/xhtml", "application/xhtml+xml":
		return MIMEXHTML
	case "image/svg", "image/svg+xml", "application/svg+xml":
		return MIMESVG
	case "application/mathml+xml", "application/mathml":
		return MIMEMathML
	default:
		return MIMEXML
	}
}

// IsHTMLMIME reports whether m is parsed with the HTML parser.
func IsHTMLMIME(m string) bool {
	switch NormalizeMIME(m) {
	case MIMEHTML, MIMEXHTML:
		return true
	}
	return false
}
