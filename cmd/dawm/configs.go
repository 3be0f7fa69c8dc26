package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/dawm/encode"
	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
	"github.com/pelletier/go-toml/v2"
)

type MainConfig struct {
	Color    bool   `cli:"name=color desc='encode with color'"`
	XML      bool   `cli:"name=xml desc='serialize with xml syntax'"`
	Wire     bool   `cli:"name=w aliases=wire desc='inputs are wire documents (json or yaml)'"`
	MIME     string `cli:"name=t aliases=type desc='content type of markup inputs (default from file extension)'"`
	NoScript bool   `cli:"name=noscript desc='parse html with scripting disabled'"`

	Format *wire.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// Defaults is the shape of the -config TOML file.
//
//	type = "text/html"
//	format = "yaml"
//	color = true
//	scripts = false
type Defaults struct {
	Type    string `toml:"type"`
	Format  string `toml:"format"`
	Color   *bool  `toml:"color"`
	Scripts *bool  `toml:"scripts"`
	XML     bool   `toml:"xml"`
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", a, err)
	}
	defs := &Defaults{}
	if err := toml.Unmarshal(d, defs); err != nil {
		return nil, fmt.Errorf("%w: config file %s: %w", cli.ErrUsage, a, err)
	}
	if err := cfg.apply(defs); err != nil {
		return nil, err
	}
	return a, nil
}

func (cfg *MainConfig) apply(defs *Defaults) error {
	if defs.Type != "" {
		cfg.MIME = defs.Type
	}
	if defs.Format != "" {
		f, err := wire.ParseFormat(defs.Format)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = &f
	}
	if defs.Color != nil {
		cfg.Color = *defs.Color
	}
	if defs.Scripts != nil {
		cfg.NoScript = !*defs.Scripts
	}
	cfg.XML = cfg.XML || defs.XML
	return nil
}

func (cfg *MainConfig) fmtFunc(_ *cli.Context, v string) (any, error) {
	f, err := wire.ParseFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Format = &f
	return f, nil
}

func (cfg *MainConfig) format() wire.Format {
	if cfg.Format != nil {
		return *cfg.Format
	}
	return wire.JSONFormat
}

// mime returns the content type for a markup input named file.
func (cfg *MainConfig) mime(file string) string {
	if cfg.MIME != "" {
		return cfg.MIME
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xhtml", ".xht":
		return wire.MIMEXHTML
	case ".svg":
		return wire.MIMESVG
	case ".mml":
		return wire.MIMEMathML
	case ".xml", ".xsd", ".xsl", ".rss", ".atom":
		return wire.MIMEXML
	}
	return wire.MIMEHTML
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.AllowScripts(!cfg.NoScript),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeXML(cfg.XML),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Inner bool `cli:"name=inner desc='render only the children of the root'"`
	View  *cli.Command
}

type DumpConfig struct {
	*MainConfig

	DropDoctype bool   `cli:"name=nodoctype desc='drop the doctype'"`
	Fragment    string `cli:"name=fragment desc='parse html as a fragment in this context element'"`
	Dump        *cli.Command
}

func (cfg *DumpConfig) parseOpts() []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.DropDoctype(cfg.DropDoctype))
}

type LoadConfig struct {
	*MainConfig

	Load *cli.Command
}

type GetConfig struct {
	*MainConfig

	First bool `cli:"name=first desc='only the first match'"`
	Text  bool `cli:"name=text desc='print text content instead of markup'"`
	Get   *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	String bool `cli:"name=s desc='consider the filter a string argument'"`
	File   bool `cli:"name=f desc='consider the filter a file path'"`
	Tags   bool `cli:"name=tags desc='show available filter symbols'"`
	Count  bool `cli:"name=c aliases=count desc='only print the number of matches'"`
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Edits   bool `cli:"name=edits desc='write the markup edits as json instead of a tree diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`
	Merge  bool `cli:"name=merge desc='the patch is a json merge patch (RFC 7396)'"`
	Edits  bool `cli:"name=edits desc='the patch is a markup edit list from diff -edits'"`
	Dump   bool `cli:"name=dump desc='output the patched wire document'"`

	Patch *cli.Command
}
