package main

import (
	"fmt"

	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/encode"
	"github.com/signadot/dawm/selector"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a css selector", cli.ErrUsage)
	}
	m, err := selector.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, file := range inputs(args[1:]) {
		d, err := getDoc(cfg.MainConfig, cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		var els []dom.Element
		if cfg.First {
			if el := m.Query(d.Node()); !el.IsNull() {
				els = append(els, el)
			}
		} else {
			els = m.QueryAll(d.Node())
		}
		if err := writeElements(cfg.MainConfig, cc, els, cfg.Text); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, m, err)
		}
	}
	return nil
}

func writeElements(cfg *MainConfig, cc *cli.Context, els []dom.Element, text bool) error {
	opts := cfg.encOpts(cc.Out)
	for _, el := range els {
		if text {
			if _, err := fmt.Fprintln(cc.Out, el.TextContent()); err != nil {
				return err
			}
			continue
		}
		if err := encode.Encode(el.Node, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding output: %w", err)
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
