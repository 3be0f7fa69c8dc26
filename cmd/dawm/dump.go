package main

import (
	"fmt"

	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Wire {
		return fmt.Errorf("%w: dump reads markup, not wire documents", cli.ErrUsage)
	}
	files := inputs(args)
	for i, file := range files {
		doc, err := dumpDoc(cfg, cc, file)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i > 0 && cfg.format() == wire.YAMLFormat {
			cc.Out.Write([]byte("---\n"))
		}
		if err := wire.Encode(doc, cc.Out, cfg.format()); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

func dumpDoc(cfg *DumpConfig, cc *cli.Context, file string) (*wire.Doc, error) {
	if cfg.Fragment == "" {
		return wireDoc(cfg.MainConfig, cc, file, cfg.parseOpts()...)
	}
	d, err := readInput(cc, file)
	if err != nil {
		return nil, err
	}
	return parse.Fragment(d, cfg.Fragment, cfg.parseOpts()...)
}
