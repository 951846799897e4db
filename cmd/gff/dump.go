package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/andastra/gff/codec"
	"github.com/andastra/gff/format"
	"github.com/andastra/gff/tree"
)

func runDump(args []string) error {
	flags := pflag.NewFlagSet("dump", pflag.ExitOnError)
	maxDepth := flags.Int("max-depth", codec.DefaultMaxDepth, "maximum struct nesting depth to decode")
	noColor := flags.Bool("no-color", false, "disable colored output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gff dump [flags] FILE")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("dump takes exactly one file argument")
	}
	disableColorIfAsked(*noColor)

	path := flags.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := codec.Decode(data, codec.WithMaxDepth(*maxDepth))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s %s\n", heading("# file:"), path)

	node := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(node, "content_type", scalar(doc.ContentType))
	appendPair(node, "version", scalar(doc.Version))
	appendPair(node, "root", structNode(doc.Root))

	out, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)

	return nil
}

// structNode renders a struct as a YAML mapping, one entry per field in
// insertion order, with the field type as a line comment on the key.
func structNode(s *tree.Struct) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, label := range s.FieldNames() {
		f, _ := s.Field(label)
		key := scalar(label)
		key.LineComment = f.Type.String()
		node.Content = append(node.Content, key, valueNode(f))
	}

	return node
}

func valueNode(f tree.Field) *yaml.Node {
	switch f.Type {
	case format.TypeStruct:
		return structNode(f.Value.(*tree.Struct))
	case format.TypeList:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, elem := range f.Value.(*tree.List).Structs() {
			seq.Content = append(seq.Content, structNode(elem))
		}
		return seq
	case format.TypeLocString:
		return locStringNode(f.Value.(tree.LocString))
	case format.TypeBinary:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(f.Value.([]byte)),
		}
	case format.TypeVector3:
		v := f.Value.(tree.Vector3)
		return vectorNode(v.X, v.Y, v.Z)
	case format.TypeVector4:
		v := f.Value.(tree.Vector4)
		return vectorNode(v.X, v.Y, v.Z, v.W)
	case format.TypeString:
		return scalar(f.Value.(string))
	case format.TypeResRef:
		return scalar(string(f.Value.(tree.ResRef)))
	default:
		return num(fmt.Sprint(f.Value))
	}
}

func locStringNode(ls tree.LocString) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if ls.Ref != nil {
		appendPair(node, "stringref", num(strconv.FormatUint(uint64(*ls.Ref), 10)))
	} else {
		appendPair(node, "stringref", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
	}

	subs := &yaml.Node{Kind: yaml.SequenceNode}
	for _, sub := range ls.Substrings {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(entry, "language", num(strconv.FormatUint(uint64(sub.Language), 10)))
		appendPair(entry, "gender", num(strconv.Itoa(int(sub.Gender))))
		appendPair(entry, "text", scalar(sub.Text))
		subs.Content = append(subs.Content, entry)
	}
	appendPair(node, "substrings", subs)

	return node
}

func vectorNode(components ...float32) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range components {
		node.Content = append(node.Content, num(strconv.FormatFloat(float64(c), 'g', -1, 32)))
	}

	return node
}

// scalar builds a string scalar; quoting is forced so numeric-looking text
// stays a string on re-parse.
func scalar(v string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	node.SetString(v)

	return node
}

// num builds an untagged scalar that marshals without quotes.
func num(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
