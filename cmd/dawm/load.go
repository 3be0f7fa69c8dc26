package main

import (
	"fmt"

	"github.com/signadot/dawm"
	"github.com/signadot/dawm/encode"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		in, err := readInput(cc, file)
		if err != nil {
			return err
		}
		d, err := dawm.Load(in)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
		if err := encode.Encode(d.Node(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
