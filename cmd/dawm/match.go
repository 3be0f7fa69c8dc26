package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/dawm/eval"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Tags {
		fmt.Fprintf(cc.Out, "available filter symbols:\n")
		for _, s := range eval.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", s)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a filter expression", cli.ErrUsage)
	}
	src, err := getish(cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return err
	}
	f, err := eval.Compile(string(src))
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, file := range inputs(args[1:]) {
		d, err := getDoc(cfg.MainConfig, cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		els, err := f.QueryAll(d.Node())
		if err != nil {
			return fmt.Errorf("error matching %s: %w", file, err)
		}
		if cfg.Count {
			fmt.Fprintf(cc.Out, "%s: %d\n", file, len(els))
			continue
		}
		if err := writeElements(cfg.MainConfig, cc, els, false); err != nil {
			return err
		}
	}
	return nil
}

// getish reads arg as a string or as a file path, by flag.
func getish(s, f bool, cc *cli.Context, arg string) ([]byte, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var r io.Reader
	if f {
		switch arg {
		case "-":
			r = cc.In
		default:
			f, err := os.Open(arg)
			if err != nil {
				return nil, fmt.Errorf("error opening %s: %w", arg, err)
			}
			defer f.Close()
			r = f
		}
	} else {
		r = strings.NewReader(arg)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	return d, nil
}
