package main

import (
	"fmt"

	"github.com/signadot/dawm"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/encode"
	"github.com/signadot/dawm/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/segmentio/encoding/json"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Edits {
		return diffEdits(cfg, cc, a, b)
	}
	edits := dawm.Diff(a.Node(), b.Node())
	if edits == nil {
		return nil
	}
	if cfg.Reverse {
		edits = libdiff.Reverse(edits)
	}
	colors := cfg.Color || isTerminal(cc.Out)
	if _, err := cc.Out.Write([]byte(libdiff.Format(edits, colors))); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// diffEdits writes the edits turning the markup of a into that of b as a
// json list that patch -edits applies.
func diffEdits(cfg *DiffConfig, cc *cli.Context, a, b *dom.Document) error {
	edits, err := markupEdits(cfg.MainConfig, a, b)
	if err != nil {
		return err
	}
	if cfg.Reverse {
		edits = libdiff.Reverse(edits)
	}
	d, err := json.Marshal(edits)
	if err != nil {
		return err
	}
	if _, err := cc.Out.Write(append(d, '\n')); err != nil {
		return err
	}
	if libdiff.IsEmpty(edits) {
		return nil
	}
	return cli.ExitCodeErr(1)
}

func markupEdits(cfg *MainConfig, a, b *dom.Document) ([]libdiff.Edit, error) {
	ma, err := markup(cfg, a)
	if err != nil {
		return nil, err
	}
	mb, err := markup(cfg, b)
	if err != nil {
		return nil, err
	}
	return libdiff.DiffString(ma, mb), nil
}

// markup renders d without colors, the text markup edits refer to.
func markup(cfg *MainConfig, d *dom.Document) (string, error) {
	return dawm.Render(d.Node(), encode.EncodeXML(cfg.XML))
}
