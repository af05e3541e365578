// 16 Oct 2026
// Read or fetch a protein structure and draw a Ramachandran plot.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/rama/pkg/common"
	"github.com/andrew-torda/rama/pkg/pdb"
	"github.com/andrew-torda/rama/pkg/rama"
	"github.com/andrew-torda/rama/pkg/ramaplot"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] file_or_accession_code")
	long := `The argument can be a pdb file, possibly gzipped, or an accession code
like 1abc. If there is no such file, it is downloaded and kept.
The plot is written next to it as id_rama.ext.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags rama.CmdFlag
	flag.BoolVar(&flags.Angles, "a", false, "print phi,psi pairs on stdout")
	flag.StringVar(&flags.ConfigFile, "c", "", "toml config file")
	flag.StringVar(&flags.ImageExt, "e", ramaplot.DfltExt, "image type, from the file extension")
	flag.StringVar(&flags.Log, "l", "", "log to this file, or stdout or stderr")
	flag.StringVar(&flags.Renderer, "r", "raster", "renderer, raster or gonum")
	flag.IntVar(&flags.Site, "s", 0, fmt.Sprintf("download site, 0 to %d", pdb.NSite-1))
	flag.StringVar(&flags.Title, "t", "", "plot title")
	flag.BoolVar(&flags.Strict, "x", false, "strict, stop on broken lines and bad geometry")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(ExitUsageError)
	}

	if flags.ConfigFile != "" {
		cfg, err := rama.ReadConfig(flags.ConfigFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ExitFailure)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		flags.Merge(cfg, set)
	}

	if err := rama.Mymain(&flags, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var uerr rama.UsageError
		if errors.As(err, &uerr) {
			os.Exit(ExitUsageError)
		}
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
