package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/dawm"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"

	"github.com/scott-cotton/cli"
)

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// wireDoc reads path as a wire document, parsing it first unless the
// inputs are wire documents already.
func wireDoc(cfg *MainConfig, cc *cli.Context, path string, opts ...parse.ParseOption) (*wire.Doc, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	if cfg.Wire {
		return wire.Decode(d)
	}
	return parse.Parse(d, cfg.mime(path), append(cfg.parseOpts(), opts...)...)
}

func getDoc(cfg *MainConfig, cc *cli.Context, path string) (*dom.Document, error) {
	doc, err := wireDoc(cfg, cc, path)
	if err != nil {
		return nil, err
	}
	return dawm.FromWire(doc)
}

// inputs returns args, or stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
