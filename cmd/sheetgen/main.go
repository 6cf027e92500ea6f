// Command sheetgen renders an attendance sheet PDF without the HTTP server.
//
//	sheetgen -in entradas.xlsx -out planilla.pdf -logo logo.png
//	sheetgen -interactive -out planilla.pdf
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"asistencia/internal/domain"
	"asistencia/internal/importer"
	"asistencia/internal/pdfexport"
)

type options struct {
	in          string
	out         string
	logo        string
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "Entries file (xlsx, csv, yaml, yml or json)")
	flag.StringVar(&opts.out, "out", domain.DocumentFileName, "Output PDF path")
	flag.StringVar(&opts.logo, "logo", "", "Logo image drawn in the header (optional)")
	flag.BoolVar(&opts.interactive, "interactive", false, "Prompt for entries on the terminal")
	flag.Parse()

	if err := run(opts, surveyPrompter{}, os.Stdout); err != nil {
		if errors.Is(err, errAborted) {
			os.Exit(130)
		}
		log.Fatal(err)
	}
}

func run(opts options, p prompter, stdout io.Writer) error {
	if opts.in == "" && !opts.interactive {
		return errors.New("either -in or -interactive is required")
	}

	var entries []domain.Entry
	if opts.in != "" {
		loaded, err := loadEntries(opts.in, stdout)
		if err != nil {
			return err
		}
		entries = append(entries, loaded...)
	}
	if opts.interactive {
		typed, err := collectEntries(p)
		if err != nil {
			return err
		}
		entries = append(entries, typed...)
	}

	gen := pdfexport.NewGenerator(pdfexport.Options{LogoPath: opts.logo, Compress: true})
	doc, err := gen.Generate(entries)
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		log.Printf("sheetgen: warning: %v", w)
	}

	if err := os.WriteFile(opts.out, doc.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	fmt.Fprintf(stdout, "%s: %d entries, %d pages\n", opts.out, doc.RowCount, doc.PageCount)
	return nil
}

func loadEntries(path string, stdout io.Writer) ([]domain.Entry, error) {
	format, err := importer.FormatFromFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	res, err := importer.Parse(format, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, rej := range res.Rejected {
		fmt.Fprintf(stdout, "row %d skipped: missing %v\n", rej.Row, rej.Fields)
	}
	return res.Entries, nil
}
