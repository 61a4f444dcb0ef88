package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/smkm/analysis"
	"github.com/lunixbochs/smkm/arch"
	"github.com/lunixbochs/smkm/loader"
	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/ststore"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string, out io.Writer) error {
	fs := flag.NewFlagSet("stlocate", flag.ExitOnError)
	configPath := fs.String("c", "", "config file (default: config.yml in the user config dir)")
	symfile := fs.String("sym", "", "yaml symbol file for the image")
	verbose := fs.Bool("v", false, "verbose output")
	color := fs.Bool("color", false, "colorize output")
	listSyms := fs.String("syms", "", "list symbols containing `pattern` and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <image>\n\nOptions:\n", argv[0])
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  %s -sym ntoskrnl.yml ntoskrnl.exe\n", argv[0])
	}
	fs.Parse(argv[1:])
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	config, err := models.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	// explicit flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sym":
			config.SymbolFile = *symfile
		case "v":
			config.Verbose = *verbose
		case "color":
			config.Color = *color
		}
	})

	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{ForceColors: config.Color, DisableTimestamp: true}
	if config.Verbose {
		log.Level = logrus.DebugLevel
	}

	image := fs.Arg(0)
	l, err := loader.LoadFile(image, config.SymbolFile)
	if err != nil {
		return err
	}
	a, err := arch.GetArch(l.Arch())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"image": image,
		"arch":  a.Name,
		"base":  fmt.Sprintf("%#x", l.Base()),
		"entry": fmt.Sprintf("%#x", l.Entry()),
		"pdb":   l.DebugInfo().Id(),
	}).Debug("loaded image")

	host, err := analysis.New(l, a, config, log)
	if err != nil {
		return err
	}
	if *listSyms != "" {
		printSymbols(out, host.Symbols().Match(*listSyms), config.Color)
		return nil
	}

	st, err := ststore.New(host, log)
	if err != nil {
		return err
	}
	fields, err := st.Dump()
	if err != nil {
		return errors.Wrap(err, "locating ST_STORE fields")
	}
	printFields(out, fields, config.Color)
	return nil
}

func printSymbols(w io.Writer, syms models.Symbols, color bool) {
	names := make([]string, len(syms))
	byName := make(map[string]models.Symbol, len(syms))
	for i, s := range syms {
		names[i] = s.Name
		byName[s.Name] = s
	}
	sort.Sort(sortorder.Natural(names))
	for _, name := range names {
		s := byName[name]
		addr := fmt.Sprintf("%#x", s.Start)
		if color {
			addr = ansi.Color(addr, "cyan")
		}
		fmt.Fprintf(w, "%s %#x %s\n", addr, s.Size(), name)
	}
}

func printFields(w io.Writer, fields map[string]uint64, color bool) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Sort(sortorder.Natural(names))
	for _, name := range names {
		label := name
		if color {
			label = ansi.Color(name, "green+b")
		}
		fmt.Fprintf(w, "%s: %#x\n", label, fields[name])
	}
}
