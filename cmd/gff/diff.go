package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/andastra/gff/codec"
	"github.com/andastra/gff/format"
	"github.com/andastra/gff/tree"
)

// errTreesDiffer signals a clean "files differ" outcome, reported through
// the exit status rather than an error message.
var errTreesDiffer = errors.New("trees differ")

var (
	diffOnlyA = color.New(color.FgRed).SprintfFunc()
	diffOnlyB = color.New(color.FgGreen).SprintfFunc()
	diffBoth  = color.New(color.FgYellow).SprintfFunc()
)

func runDiff(args []string) error {
	flags := pflag.NewFlagSet("diff", pflag.ExitOnError)
	noColor := flags.Bool("no-color", false, "disable colored output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gff diff [flags] FILE_A FILE_B")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("diff takes exactly two file arguments")
	}
	disableColorIfAsked(*noColor)

	docA, err := loadDocument(flags.Arg(0))
	if err != nil {
		return err
	}
	docB, err := loadDocument(flags.Arg(1))
	if err != nil {
		return err
	}

	if docA.Fingerprint() == docB.Fingerprint() && tree.Equal(docA, docB) {
		fmt.Println("files are structurally identical")
		return nil
	}

	for _, line := range diffDocuments(docA, docB) {
		fmt.Println(line)
	}

	return errTreesDiffer
}

func loadDocument(path string) (*tree.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// diffDocuments returns one line per structural difference between the two
// documents.
func diffDocuments(a, b *tree.Document) []string {
	var lines []string
	if a.ContentType != b.ContentType {
		lines = append(lines, diffBoth("content type: %q vs %q", a.ContentType, b.ContentType))
	}
	if a.Version != b.Version {
		lines = append(lines, diffBoth("version: %q vs %q", a.Version, b.Version))
	}

	return append(lines, diffStructs("/", a.Root, b.Root)...)
}

// diffStructs walks both structs and collects one line per difference,
// keyed by the slash-separated field path.
func diffStructs(path string, a, b *tree.Struct) []string {
	var lines []string
	if a.ID() != b.ID() {
		lines = append(lines, diffBoth("~ %s: struct id %d vs %d", path, a.ID(), b.ID()))
	}

	for _, label := range a.FieldNames() {
		fa, _ := a.Field(label)
		fb, inB := b.Field(label)
		if !inB {
			lines = append(lines, diffOnlyA("- %s%s (%s) only in A", path, label, fa.Type))
			continue
		}
		lines = append(lines, diffFields(path+label, fa, fb)...)
	}

	for _, label := range b.FieldNames() {
		if _, inA := a.Field(label); !inA {
			fb, _ := b.Field(label)
			lines = append(lines, diffOnlyB("+ %s%s (%s) only in B", path, label, fb.Type))
		}
	}

	return lines
}

func diffFields(path string, a, b tree.Field) []string {
	if a.Type != b.Type {
		return []string{diffBoth("~ %s: type %s vs %s", path, a.Type, b.Type)}
	}

	switch a.Type {
	case format.TypeStruct:
		return diffStructs(path+"/", a.Value.(*tree.Struct), b.Value.(*tree.Struct))
	case format.TypeList:
		var lines []string
		listA, listB := a.Value.(*tree.List), b.Value.(*tree.List)
		if listA.Len() != listB.Len() {
			lines = append(lines, diffBoth("~ %s: list length %d vs %d", path, listA.Len(), listB.Len()))
		}
		n := listA.Len()
		if listB.Len() < n {
			n = listB.Len()
		}
		for i := 0; i < n; i++ {
			lines = append(lines, diffStructs(fmt.Sprintf("%s[%d]/", path, i), listA.At(i), listB.At(i))...)
		}
		return lines
	default:
		if !tree.FieldEqual(a, b) {
			return []string{diffBoth("~ %s: %s vs %s", path, formatValue(a), formatValue(b))}
		}
		return nil
	}
}

func formatValue(f tree.Field) string {
	switch f.Type {
	case format.TypeString:
		return fmt.Sprintf("%q", f.Value.(string))
	case format.TypeResRef:
		return fmt.Sprintf("%q", string(f.Value.(tree.ResRef)))
	case format.TypeBinary:
		return fmt.Sprintf("%d bytes", len(f.Value.([]byte)))
	case format.TypeLocString:
		ls := f.Value.(tree.LocString)
		if ls.Ref != nil {
			return fmt.Sprintf("locstring(ref=%d, %d substrings)", *ls.Ref, len(ls.Substrings))
		}
		return fmt.Sprintf("locstring(%d substrings)", len(ls.Substrings))
	default:
		return fmt.Sprint(f.Value)
	}
}
