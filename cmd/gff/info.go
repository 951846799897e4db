package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/andastra/gff/codec"
)

func runInfo(args []string) error {
	flags := pflag.NewFlagSet("info", pflag.ExitOnError)
	noColor := flags.Bool("no-color", false, "disable colored output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gff info [flags] FILE")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("info takes exactly one file argument")
	}
	disableColorIfAsked(*noColor)

	path := flags.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder, err := codec.NewDecoder(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	header := decoder.Header()

	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	num := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("%s %s (%d bytes)\n", heading("file:"), path, len(data))
	fmt.Printf("%s %q  %s %q\n", heading("content type:"), header.ContentType, heading("version:"), header.Version)
	fmt.Printf("%s %s entries at offset %d\n", heading("structs:"), num(header.StructCount), header.StructOffset)
	fmt.Printf("%s %s entries at offset %d\n", heading("fields:"), num(header.FieldCount), header.FieldOffset)
	fmt.Printf("%s %s entries at offset %d\n", heading("labels:"), num(header.LabelCount), header.LabelOffset)
	fmt.Printf("%s %s bytes at offset %d\n", heading("field data:"), num(header.FieldDataSize), header.FieldDataOffset)
	fmt.Printf("%s %s elements at offset %d\n", heading("field indices:"), num(header.FieldIndicesCount), header.FieldIndicesOffset)
	fmt.Printf("%s %s bytes at offset %d\n", heading("list indices:"), num(header.ListIndicesSize), header.ListIndicesOffset)

	return nil
}
