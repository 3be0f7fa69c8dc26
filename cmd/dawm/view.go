package main

import (
	"fmt"
	"io"

	"github.com/signadot/dawm/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		if err := viewFile(cfg, cc, cc.Out, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(files)-1 {
			cc.Out.Write([]byte("\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, w io.Writer, file string) error {
	d, err := getDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(w)
	root := d.Node()
	if cfg.Inner {
		root = d.DocumentElement().Node
		opts = append(opts, encode.EncodeInner(true))
	}
	if err := encode.Encode(root, w, opts...); err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
