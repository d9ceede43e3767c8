package main

import (
	"bytes"
	"fmt"
	"io"
	"text/template"
)

const UsageTextTemplate = `
{{ .T.UsageTitle }}

{{ .T.UsageSummary }}

{{ .T.UsagePaymentTerms }}

--values     (-v):  {{ .T.UsageFlagValues }}
--template   (-t):  {{ .T.UsageFlagTemplate }}
--help       (-h):  {{ .T.UsageFlagHelp }}
--theme:            {{ .T.UsageFlagTheme }}
--preview:          {{ .T.UsageFlagPreview }}

Built-in themes: {{ range $i, $name := .Themes }}{{ if $i }}, {{ end }}{{ $name }}{{ end }}
`

// getUsageText renders the usage message, preceded by message when it is not
// empty.
func getUsageText(t map[string]string, themes []string, message string) string {
	type tmplDataShape struct {
		T      map[string]string
		Themes []string
	}

	tmpl, err := template.New("usage").Parse(UsageTextTemplate)
	if err != nil {
		return fmt.Sprintf("failed to parse usage text template: %v\n", err.Error())
	}

	var b bytes.Buffer

	if message != "" {
		b.WriteString(message)
		b.WriteString("\n")
	}

	err = tmpl.Execute(&b, tmplDataShape{T: t, Themes: themes})
	if err != nil {
		return fmt.Sprintf("failed to render usage text: %v\n", err.Error())
	}

	return b.String()
}

func usage(w io.Writer, t map[string]string, themes []string, message string) {
	fmt.Fprint(w, getUsageText(t, themes, message))
}
