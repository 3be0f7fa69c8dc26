package wire

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	default:
		return "<unknown format>"
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "j", "json":
		return JSONFormat, nil
	case "y", "yaml", "yml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, s)
}

// Encode writes doc to w in the given format.
func Encode(doc *Doc, w io.Writer, f Format) error {
	var (
		d   []byte
		err error
	)
	switch f {
	case JSONFormat:
		d, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			d = append(d, '\n')
		}
	case YAMLFormat:
		d, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("%w: %d", ErrFormat, f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
