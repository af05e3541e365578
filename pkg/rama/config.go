// 15 Oct 2026
// Settings come from the command line and, optionally, a toml file.
// Anything given on the command line wins.

package rama

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is what can go in the toml file. Zero values mean "not set".
type Config struct {
	BaseURL  string `toml:"base_url"`  // overrides the site table
	FetchExt string `toml:"fetch_ext"` // pdb or pdb.gz
	Site     int    `toml:"site"`
	ImageExt string `toml:"image_ext"`
	Renderer string `toml:"renderer"`
	Size     int    `toml:"size"` // pixels
	Title    string `toml:"title"`
	Strict   bool   `toml:"strict"`
	Log      string `toml:"log"`
}

// CmdFlag is literally command line flags after parsing, on top of
// whatever the config file said.
type CmdFlag struct {
	Config
	Angles     bool   // print phi,psi pairs on stdout
	ConfigFile string // toml file, may be empty
}

// ReadConfig decodes a toml file.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := toml.NewDecoder(f).Strict(true).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Size < 0 {
		return nil, fmt.Errorf("config %s: size %d is negative", path, cfg.Size)
	}
	return &cfg, nil
}

// Merge copies settings from cfg into flags, unless they were given on
// the command line. set holds the names of flags the user gave, as
// collected by flag.Visit.
func (flags *CmdFlag) Merge(cfg *Config, set map[string]bool) {
	if cfg == nil {
		return
	}
	str := func(name string, dst *string, v string) {
		if !set[name] && v != "" {
			*dst = v
		}
	}
	str("e", &flags.ImageExt, cfg.ImageExt)
	str("l", &flags.Log, cfg.Log)
	str("r", &flags.Renderer, cfg.Renderer)
	str("t", &flags.Title, cfg.Title)
	if !set["s"] && cfg.Site != 0 {
		flags.Site = cfg.Site
	}
	if !set["x"] && cfg.Strict {
		flags.Strict = true
	}
	// No flags for these.
	if cfg.BaseURL != "" {
		flags.BaseURL = cfg.BaseURL
	}
	if cfg.FetchExt != "" {
		flags.FetchExt = cfg.FetchExt
	}
	if cfg.Size != 0 {
		flags.Size = cfg.Size
	}
}
