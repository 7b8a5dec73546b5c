package buildtool

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

const cPrefix = "RuneCoral"

// initialisms keeps well-known abbreviations in their Go spelling when
// macro names are converted to CamelCase.
var initialisms = map[string]string{
	"TFLITE": "TFLite",
	"GPU":    "GPU",
	"TPU":    "TPU",
	"ID":     "ID",
}

// GenerateOptions controls the emitted Go file.
type GenerateOptions struct {
	// Package is the Go package name of the generated file.
	Package string
	// Source names the header in the generated-code banner.
	Source string
}

// Generate renders Go declarations for the constants, enums and exported
// functions of h. The output is gofmt formatted.
func Generate(h *Header, opts GenerateOptions) ([]byte, error) {
	if opts.Package == "" {
		return nil, errors.New("package name is required")
	}
	if opts.Source == "" {
		opts.Source = headerName
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by runecoral-build bindgen from %s. DO NOT EDIT.\n\n", opts.Source)
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)

	for _, d := range h.Defines {
		goName := GoDefineName(d.Name)
		if goName == "" {
			continue
		}
		switch {
		case d.String:
			fmt.Fprintf(&b, "// %s mirrors %s.\nconst %s = %q\n\n", goName, d.Name, goName, d.Value)
		case isIntegerLiteral(d.Value):
			fmt.Fprintf(&b, "// %s mirrors %s.\nconst %s = %s\n\n", goName, d.Name, goName, d.Value)
		}
	}

	for _, e := range h.Enums {
		typeName := GoTypeName(e.Name)
		fmt.Fprintf(&b, "// %s mirrors the C enum %s.\ntype %s int32\n\n", typeName, e.Name, typeName)
		b.WriteString("const (\n")
		for _, v := range e.Values {
			fmt.Fprintf(&b, "\t%s %s = %d\n", GoConstName(v.Name), typeName, v.Value)
		}
		b.WriteString(")\n\n")
	}

	b.WriteString("// Symbols lists the functions exported by librunecoral.\n")
	b.WriteString("var Symbols = []string{\n")
	for _, fn := range h.Functions {
		fmt.Fprintf(&b, "\t%q,\n", fn.Name)
	}
	b.WriteString("}\n")

	out, err := imports.Process(opts.Source+".go", b.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "format generated bindings")
	}
	return out, nil
}

// GoTypeName converts a C type name such as RuneCoralLoadResult into the
// Go name LoadResult.
func GoTypeName(cName string) string {
	if trimmed := strings.TrimPrefix(cName, cPrefix); trimmed != "" && trimmed != cName {
		return trimmed
	}
	return exported(cName)
}

// GoConstName converts an enumerator such as RuneCoralLoadResult__Ok into
// LoadResultOk.
func GoConstName(cName string) string {
	enum, value, ok := strings.Cut(cName, "__")
	if !ok {
		return exported(cName)
	}
	return GoTypeName(enum) + exported(value)
}

// GoDefineName converts a macro such as RUNE_CORAL_MIME_TYPE__TFLITE into
// MimeTypeTFLite. Macros outside the RUNE_CORAL_ namespace are skipped.
func GoDefineName(cName string) string {
	rest, ok := strings.CutPrefix(cName, "RUNE_CORAL_")
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, group := range strings.Split(rest, "__") {
		for _, word := range strings.Split(group, "_") {
			if word == "" {
				continue
			}
			if special, ok := initialisms[word]; ok {
				b.WriteString(special)
				continue
			}
			b.WriteString(word[:1])
			b.WriteString(strings.ToLower(word[1:]))
		}
	}
	return b.String()
}

func exported(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isIntegerLiteral(s string) bool {
	_, err := strconv.ParseInt(s, 0, 64)
	return err == nil
}
