package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/dawm"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/encode"
	"github.com/signadot/dawm/libdiff"
	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/segmentio/encoding/json"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a json patch, and a file to which to apply it", cli.ErrUsage)
	}
	p, err := getish(cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var res *wire.Doc
	if cfg.Edits {
		d, err := getDoc(cfg.MainConfig, cc, args[1])
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		res, err = applyEdits(cfg.MainConfig, d, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", args[1], err)
		}
	} else {
		target, err := wireDoc(cfg.MainConfig, cc, args[1])
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		res, err = applyPatch(target, p, cfg.Merge)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", args[1], err)
		}
	}
	if cfg.Dump {
		return wire.Encode(res, cc.Out, cfg.format())
	}
	d, err := dawm.FromWire(res)
	if err != nil {
		return fmt.Errorf("patched document: %w", err)
	}
	if err := encode.Encode(d.Node(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = cc.Out.Write([]byte("\n"))
	return err
}

// applyPatch applies an RFC 6902 patch, or an RFC 7396 merge patch, to the
// JSON form of doc and decodes the result.
func applyPatch(doc *wire.Doc, p []byte, merge bool) (*wire.Doc, error) {
	buf := bytes.NewBuffer(nil)
	if err := wire.Encode(doc, buf, wire.JSONFormat); err != nil {
		return nil, err
	}
	var (
		out []byte
		err error
	)
	if merge {
		out, err = jsonpatch.MergePatch(buf.Bytes(), p)
	} else {
		var ops jsonpatch.Patch
		ops, err = jsonpatch.DecodePatch(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		out, err = ops.Apply(buf.Bytes())
	}
	if err != nil {
		return nil, err
	}
	return wire.Decode(out)
}

// applyEdits applies a markup edit list to the rendered markup of d and
// parses the result with d's content type.
func applyEdits(cfg *MainConfig, d *dom.Document, p []byte) (*wire.Doc, error) {
	var edits []libdiff.Edit
	if err := json.Unmarshal(p, &edits); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	from, err := markup(cfg, d)
	if err != nil {
		return nil, err
	}
	to, err := libdiff.Patch(from, edits)
	if err != nil {
		return nil, err
	}
	return parse.Parse([]byte(to), d.ContentType(), cfg.parseOpts()...)
}
