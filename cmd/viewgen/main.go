// Command viewgen writes the typed view constructors of package ecs.
//
// Each constructor borrows a fixed combination of component arenas, R for
// reading and W for writing, and returns the matching View with one fetch
// per type.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

type param struct {
	N     int
	Type  string
	Fetch string
}

type viewFunc struct {
	Name   string
	Doc    string
	Params []param
}

func (f viewFunc) TypeParams() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Type
	}
	return strings.Join(names, ", ")
}

func (f viewFunc) FetchNames() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = fmt.Sprintf("f%d", p.N)
	}
	return strings.Join(names, ", ")
}

func newViewFunc(reads, writes int) viewFunc {
	f := viewFunc{}
	var name strings.Builder
	name.WriteString("View")
	if reads > 0 {
		fmt.Fprintf(&name, "R%d", reads)
	}
	if writes > 0 {
		fmt.Fprintf(&name, "W%d", writes)
	}
	f.Name = name.String()

	var readTypes, writeTypes []string
	for i := 1; i <= reads+writes; i++ {
		p := param{N: i, Type: fmt.Sprintf("T%d", i), Fetch: "Fetch"}
		if i > reads {
			p.Fetch = "FetchMut"
			writeTypes = append(writeTypes, p.Type)
		} else {
			readTypes = append(readTypes, p.Type)
		}
		f.Params = append(f.Params, p)
	}

	var parts []string
	if len(readTypes) > 0 {
		parts = append(parts, joinTypes(readTypes)+" for reading")
	}
	if len(writeTypes) > 0 {
		parts = append(parts, joinTypes(writeTypes)+" for writing")
	}
	f.Doc = strings.Join(parts, " and ")
	return f
}

func joinTypes(types []string) string {
	if len(types) == 1 {
		return types[0]
	}
	return strings.Join(types[:len(types)-1], ", ") + " and " + types[len(types)-1]
}

// combinations lists the (reads, writes) pairs to generate.
var combinations = [][2]int{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 1}, {2, 1}, {1, 2}, {2, 2},
}

const viewTemplate = `// Code generated by viewgen. DO NOT EDIT.

package ecs
{{range .}}
// {{.Name}} borrows {{.Doc}}, and returns the view of
// entities carrying all of them. Release the fetches when done.
{{- if eq (len .Params) 1}}
func {{.Name}}[{{.TypeParams}} any](w *World) (View{{range .Params}}, *{{.Fetch}}[{{.Type}}]{{end}}) {
{{- range .Params}}
	c{{.N}} := cellFor[{{.Type}}](w)
{{- end}}
	var mask Mask
{{- range .Params}}
	mask.Set(c{{.N}}.ordinal)
{{- end}}
	return newView(w, mask){{range .Params}}, new{{.Fetch}}[{{.Type}}](w, c{{.N}}){{end}}
}
{{- else}}
// A conflicting borrow panics after releasing the fetches already taken.
func {{.Name}}[{{.TypeParams}} any](w *World) (view View{{range .Params}}, f{{.N}} *{{.Fetch}}[{{.Type}}]{{end}}) {
{{- range .Params}}
	c{{.N}} := cellFor[{{.Type}}](w)
{{- end}}
	var mask Mask
{{- range .Params}}
	mask.Set(c{{.N}}.ordinal)
{{- end}}

	acquired := false
	defer func() {
		if !acquired {
			ReleaseAll({{.FetchNames}})
		}
	}()
{{- range .Params}}
	f{{.N}} = new{{.Fetch}}[{{.Type}}](w, c{{.N}})
{{- end}}
	acquired = true
	return newView(w, mask){{range .Params}}, f{{.N}}{{end}}
}
{{- end}}
{{end}}`

func main() {
	output := flag.String("o", "view_generated.go", "The file to write.")
	flag.Parse()

	funcs := make([]viewFunc, 0, len(combinations))
	for _, c := range combinations {
		funcs = append(funcs, newViewFunc(c[0], c[1]))
	}

	tmpl := template.Must(template.New("views").Parse(viewTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, funcs); err != nil {
		log.Fatalf("Failed to render views: %v", err)
	}

	src, err := imports.Process(*output, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("Failed to format generated code: %v", err)
	}

	if err := os.WriteFile(*output, src, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Wrote %d view constructors to %s", len(funcs), *output)
}
