package ts

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaybe is the MaybeValue template used when none is configured.
const DefaultMaybe = "T | undefined"

var typeParam = regexp.MustCompile(`\bT\b`)

// Printer prints declarations as TypeScript source.
type Printer struct {
	// MaybeValue spells values which may be absent; every T in it is
	// replaced by the wrapped type.
	MaybeValue string

	// Indent is one level of indentation. Two spaces if empty.
	Indent string
}

func (p Printer) indent() string {
	if p.Indent == "" {
		return "  "
	}
	return p.Indent
}

func (p Printer) maybe() string {
	if p.MaybeValue == "" {
		return DefaultMaybe
	}
	return p.MaybeValue
}

// Fprint writes d to w.
func (p Printer) Fprint(w io.Writer, d *Declaration) error {
	s, err := p.Sprint(d)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// Sprint returns d as TypeScript source.
func (p Printer) Sprint(d *Declaration) (string, error) {
	var b strings.Builder
	p.comment(&b, "", d.Description, "")

	switch d.Kind {
	case KindScalar:
		fmt.Fprintf(&b, "export type %s = %s;", d.Name, p.Type(d.Alias))
	case KindEnum:
		fmt.Fprintf(&b, "export enum %s {\n", d.Name)
		for _, m := range d.Members {
			p.comment(&b, p.indent(), m.Description, m.Deprecation)
			fmt.Fprintf(&b, "%s%s = %s,\n", p.indent(), m.Name, strconv.Quote(m.Value))
		}
		b.WriteString("}")
	case KindObject, KindInput, KindInterface:
		fmt.Fprintf(&b, "export type %s = ", d.Name)
		p.object(&b, d.Props)
		b.WriteString(";")
	case KindUnion:
		u := make(Union, len(d.Variants))
		for i, v := range d.Variants {
			u[i] = Ref(v)
		}
		fmt.Fprintf(&b, "export type %s = %s;", d.Name, p.Type(u))
	case KindDocument:
		fmt.Fprintf(&b, "export const %s = gql`\n", d.Name)
		for _, line := range strings.Split(strings.TrimRight(d.Document.Text, "\n"), "\n") {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString(p.indent())
			b.WriteString(p.retab(line))
			b.WriteString("\n")
		}
		b.WriteString("`;")
	case KindBinding:
		p.binding(&b, d.Name, d.Binding)
	default:
		return "", fmt.Errorf("ts: cannot print %s declaration %s", d.Kind, d.Name)
	}

	return b.String(), nil
}

// Type returns the source of a type expression.
func (p Printer) Type(t Type) string {
	switch v := t.(type) {
	case Raw:
		return string(v)
	case Ref:
		return string(v)
	case Literal:
		return strconv.Quote(string(v))
	case Array:
		elem := p.Type(v.Elem)
		if strings.ContainsAny(elem, " |&") {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case Union:
		parts := make([]string, len(v))
		for i, u := range v {
			parts[i] = p.Type(u)
		}
		return strings.Join(parts, " | ")
	case Maybe:
		return typeParam.ReplaceAllLiteralString(p.maybe(), p.Type(v.Of))
	}
	return "unknown"
}

func (p Printer) object(b *strings.Builder, props []Property) {
	if len(props) == 0 {
		b.WriteString("{ [key: string]: never }")
		return
	}

	b.WriteString("{\n")
	for _, prop := range props {
		p.comment(b, p.indent(), prop.Description, prop.Deprecation)
		b.WriteString(p.indent())
		b.WriteString(prop.Name)
		if prop.Optional {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(p.Type(prop.Type))
		b.WriteString(";\n")
	}
	b.WriteString("}")
}

func (p Printer) binding(b *strings.Builder, name string, bd *Binding) {
	in := p.indent()
	switch bd.Kind {
	case Hook:
		lines := []string{
			fmt.Sprintf("export function %s(", name),
			fmt.Sprintf("%sbaseOptions?: Apollo.%s%sHookOptions<", in, bd.Modifier, bd.Operation),
			fmt.Sprintf("%s%s%s,", in, in, bd.Result),
			fmt.Sprintf("%s%s%s", in, in, bd.Input),
			fmt.Sprintf("%s>,", in),
			") {",
			fmt.Sprintf("%sreturn Apollo.use%s%s<", in, bd.Modifier, bd.Operation),
			fmt.Sprintf("%s%s%s,", in, in, bd.Result),
			fmt.Sprintf("%s%s%s", in, in, bd.Input),
			fmt.Sprintf("%s>(%s, baseOptions);", in, bd.Document),
			"}",
		}
		b.WriteString(strings.Join(lines, "\n"))
	case Refetch:
		fmt.Fprintf(b, "export function %s(variables?: %s) {\n", name, bd.Input)
		fmt.Fprintf(b, "%sreturn { query: %s, variables };\n", in, bd.Document)
		b.WriteString("}")
	}
}

func (p Printer) comment(b *strings.Builder, prefix, description, deprecation string) {
	var lines []string
	if description != "" {
		lines = append(lines, strings.Split(strings.TrimSpace(description), "\n")...)
	}
	if deprecation != "" {
		lines = append(lines, "@deprecated "+deprecation)
	}

	switch len(lines) {
	case 0:
		return
	case 1:
		fmt.Fprintf(b, "%s/** %s */\n", prefix, escapeComment(lines[0]))
		return
	}

	fmt.Fprintf(b, "%s/**\n", prefix)
	for _, line := range lines {
		fmt.Fprintf(b, "%s * %s\n", prefix, escapeComment(strings.TrimRight(line, " ")))
	}
	fmt.Fprintf(b, "%s */\n", prefix)
}

func escapeComment(s string) string { return strings.ReplaceAll(s, "*/", "*\\/") }

// retab replaces leading tabs with the printer's indentation.
func (p Printer) retab(line string) string {
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	return strings.Repeat(p.indent(), n) + line[n:]
}
