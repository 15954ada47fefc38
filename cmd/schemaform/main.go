package main

import (
	"flag"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	schemaform "github.com/davepar/schemaform"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "resolve":
		resolveCmd(os.Args[2:])
	case "required":
		requiredCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemaform CLI\n\nUsage:\n  schemaform resolve -in schema.json\n  schemaform required -in schema.json -pointer /path/to/field\n\nNotes:\n  - YAML input is detected by the .yaml/.yml extension.\n  - resolve prints the dereferenced document as JSON on stdout.")
}

func resolveCmd(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var in string
	fs.StringVar(&in, "in", "", "input schema document (json or yaml)")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}
	doc, err := schemaform.LoadFile(in)
	if err != nil {
		fail(err)
	}
	resolved := schemaform.ResolveAll(doc, schemaform.NewRefCache())
	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resolved); err != nil {
		fail(err)
	}
}

func requiredCmd(args []string) {
	fs := flag.NewFlagSet("required", flag.ExitOnError)
	var in, ptr string
	fs.StringVar(&in, "in", "", "input schema document (json or yaml)")
	fs.StringVar(&ptr, "pointer", "", "data pointer of the field to check")
	_ = fs.Parse(args)
	if in == "" || ptr == "" {
		fs.Usage()
		os.Exit(2)
	}
	doc, err := schemaform.LoadFile(in)
	if err != nil {
		fail(err)
	}
	required, err := schemaform.InputRequired(doc, ptr)
	if err != nil {
		fail(err)
	}
	fmt.Println(required)
}

func fail(err error) {
	if iss, ok := schemaform.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintf(os.Stderr, "schemaform: %s at %q: %s\n", it.Code, it.Path, it.Message)
		}
	} else {
		fmt.Fprintln(os.Stderr, "schemaform:", err)
	}
	os.Exit(1)
}
