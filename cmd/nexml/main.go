// Command nexml converts phylogenetic documents between NeXML, NEXUS and
// Newick. Input is NeXML or NEXUS on stdin or a file; output is NeXML or
// one Newick statement per tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phylograph/nexml/pkg/logging"
	"github.com/phylograph/nexml/pkg/model"
	"github.com/phylograph/nexml/pkg/newick"
	"github.com/phylograph/nexml/pkg/nexml"
	"github.com/phylograph/nexml/pkg/nexus"
	"github.com/phylograph/nexml/pkg/validation"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	inPath := flag.String("in", "", "Input NeXML file (default stdin)")
	outPath := flag.String("out", "", "Output file (default stdout)")
	from := flag.String("from", "", "Input format: nexml or nexus")
	format := flag.String("format", "", "Output format: nexml or newick")
	runChecks := flag.Bool("validate", false, "Run structural checks before writing")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	config := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nexml: %v\n", err)
			os.Exit(1)
		}
		config = loaded
	}
	if *from != "" {
		config.Input = *from
	}
	if *format != "" {
		config.Format = *format
	}
	if *runChecks {
		config.Validate = true
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if err := config.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "nexml: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(config.LogLevel))
	if err := run(config, *inPath, *outPath, logger); err != nil {
		logger.Error("conversion failed", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}

func run(config Config, inPath, outPath string, logger logging.Logger) error {
	src := io.Reader(os.Stdin)
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	doc, err := readDocument(config, src, logger)
	if err != nil {
		return err
	}
	logger.Debug("document parsed",
		logging.Field{Key: "otus_blocks", Value: len(doc.OTUsBlocks())},
		logging.Field{Key: "tree_blocks", Value: len(doc.TreeBlocks())})

	if config.Validate {
		if err := check(doc, logger); err != nil {
			return err
		}
	}

	dst := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	switch config.Format {
	case "newick":
		return writeNewick(dst, doc)
	default:
		w := &nexml.Writer{Indent: strings.Repeat(" ", config.Indent)}
		return w.Write(dst, doc)
	}
}

func readDocument(config Config, src io.Reader, logger logging.Logger) (*model.Document, error) {
	switch config.Input {
	case "nexus":
		r := &nexus.Reader{Logger: logger}
		return r.Read(src)
	default:
		r := &nexml.Reader{Logger: logger}
		return r.Read(src)
	}
}

// check runs every structural check, logging each violation, and fails on
// the first Error-level one.
func check(doc *model.Document, logger logging.Logger) error {
	result, err := validation.NewDefaultValidator().Validate(doc)
	if err != nil {
		return err
	}
	for _, v := range result.Violations {
		fields := []logging.Field{
			{Key: "check", Value: v.Check},
			{Key: "type", Value: v.Type.String()},
			{Key: "entity", Value: v.EntityID},
		}
		switch v.Severity {
		case validation.Error:
			logger.Error(v.Message, fields...)
		case validation.Warning:
			logger.Warn(v.Message, fields...)
		default:
			logger.Info(v.Message, fields...)
		}
	}
	if !result.Valid {
		return fmt.Errorf("document failed validation with %d violations",
			len(result.BySeverity(validation.Error)))
	}
	return nil
}

func writeNewick(dst io.Writer, doc *model.Document) error {
	for _, block := range doc.TreeBlocks() {
		for _, g := range block.Graphs() {
			tree, ok := g.(*model.Tree)
			if !ok {
				return fmt.Errorf("network %s cannot be written as newick", g.ID())
			}
			if err := newick.Write(dst, tree); err != nil {
				return err
			}
		}
	}
	return nil
}
