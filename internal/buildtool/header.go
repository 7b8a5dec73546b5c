package buildtool

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Header is the subset of a C header that describes the librunecoral ABI.
type Header struct {
	Defines   []Define
	Enums     []Enum
	Structs   []Struct
	Opaque    []string
	Functions []Function
}

type Define struct {
	Name  string
	Value string
	// String is set when Value was a quoted C string; Value is unquoted.
	String bool
}

type Enum struct {
	Name   string
	Values []EnumValue
}

type EnumValue struct {
	Name  string
	Value int64
}

type Struct struct {
	Name   string
	Fields []Field
}

type Field struct {
	Name string
	Type string
}

type Function struct {
	Name   string
	Return string
	Params []Field
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	defineLine   = regexp.MustCompile(`^#\s*define\s+(\w+)\s+(.+)$`)
	typedefEnum  = regexp.MustCompile(`(?s)^typedef\s+enum\s*\w*\s*\{(.*)\}\s*(\w+)$`)
	typedefBody  = regexp.MustCompile(`(?s)^typedef\s+struct\s*\w*\s*\{(.*)\}\s*(\w+)$`)
	typedefFwd   = regexp.MustCompile(`^typedef\s+struct\s+(\w+)\s+(\w+)$`)
	funcDecl     = regexp.MustCompile(`(?s)^(.*?[\w*\s])(\w+)\s*\((.*)\)$`)
	trailingName = regexp.MustCompile(`^(.*?)(\w+)$`)
	spaces       = regexp.MustCompile(`\s+`)
)

// ParseHeader reads the declarations in a C header. Preprocessor lines other
// than #define are ignored; anything else it does not understand is an
// error so the generated bindings never silently drop part of the ABI.
func ParseHeader(src []byte) (*Header, error) {
	text := blockComment.ReplaceAllString(string(src), " ")
	text = lineComment.ReplaceAllString(text, "")

	h := &Header{}
	var body strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			body.WriteString(line)
			body.WriteByte('\n')
			continue
		}
		if m := defineLine.FindStringSubmatch(trimmed); m != nil {
			h.Defines = append(h.Defines, parseDefine(m[1], strings.TrimSpace(m[2])))
		}
	}

	for _, decl := range splitDeclarations(body.String()) {
		if err := h.addDeclaration(decl); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func parseDefine(name, value string) Define {
	if s, err := strconv.Unquote(value); err == nil && strings.HasPrefix(value, `"`) {
		return Define{Name: name, Value: s, String: true}
	}
	return Define{Name: name, Value: value}
}

// splitDeclarations splits on semicolons outside braces.
func splitDeclarations(text string) []string {
	var (
		decls []string
		depth int
		start int
	)
	for i, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				if d := normalize(text[start:i]); d != "" {
					decls = append(decls, d)
				}
				start = i + 1
			}
		}
	}
	return decls
}

func normalize(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func (h *Header) addDeclaration(decl string) error {
	if m := typedefEnum.FindStringSubmatch(decl); m != nil {
		e, err := parseEnum(m[2], m[1])
		if err != nil {
			return err
		}
		h.Enums = append(h.Enums, e)
		return nil
	}
	if m := typedefBody.FindStringSubmatch(decl); m != nil {
		s := Struct{Name: m[2]}
		for _, f := range strings.Split(m[1], ";") {
			if f = normalize(f); f == "" {
				continue
			}
			field, err := splitTypeAndName(f)
			if err != nil {
				return errors.Wrapf(err, "struct %s", s.Name)
			}
			s.Fields = append(s.Fields, field)
		}
		h.Structs = append(h.Structs, s)
		return nil
	}
	if m := typedefFwd.FindStringSubmatch(decl); m != nil {
		h.Opaque = append(h.Opaque, m[2])
		return nil
	}
	if m := funcDecl.FindStringSubmatch(decl); m != nil {
		fn := Function{Name: m[2], Return: normalizePointer(m[1])}
		params := normalize(m[3])
		if params != "" && params != "void" {
			for _, p := range strings.Split(params, ",") {
				field, err := splitTypeAndName(normalize(p))
				if err != nil {
					return errors.Wrapf(err, "function %s", fn.Name)
				}
				fn.Params = append(fn.Params, field)
			}
		}
		h.Functions = append(h.Functions, fn)
		return nil
	}
	return errors.Errorf("unsupported declaration: %q", decl)
}

func parseEnum(name, body string) (Enum, error) {
	e := Enum{Name: name}
	next := int64(0)
	for _, item := range strings.Split(body, ",") {
		item = normalize(item)
		if item == "" {
			continue
		}
		valueName, expr, explicit := strings.Cut(item, "=")
		valueName = strings.TrimSpace(valueName)
		if explicit {
			v, err := strconv.ParseInt(strings.TrimSpace(expr), 0, 64)
			if err != nil {
				return Enum{}, errors.Wrapf(err, "enum %s: value of %s", name, valueName)
			}
			next = v
		}
		e.Values = append(e.Values, EnumValue{Name: valueName, Value: next})
		next++
	}
	return e, nil
}

func splitTypeAndName(decl string) (Field, error) {
	m := trailingName.FindStringSubmatch(decl)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return Field{}, errors.Errorf("cannot split type and name in %q", decl)
	}
	return Field{Name: m[2], Type: normalizePointer(m[1])}, nil
}

// normalizePointer renders "char*", "char *" and "char  * " as "char *".
func normalizePointer(t string) string {
	t = normalize(strings.ReplaceAll(t, "*", " * "))
	return strings.ReplaceAll(t, "* *", "**")
}

// Enum returns the enum with the given C name.
func (h *Header) Enum(name string) (Enum, bool) {
	for _, e := range h.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

// Function returns the function with the given C name.
func (h *Header) Function(name string) (Function, bool) {
	for _, f := range h.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
