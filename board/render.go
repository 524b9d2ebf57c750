package board

import (
	"bytes"
	"html/template"

	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/pkg/errors"
)

// NoServicesMessage is the placeholder for a platform with nothing departing.
const NoServicesMessage = "No services"

var panelTemplates = template.Must(template.New("panels").Parse(`
{{- define "services" -}}
{{- range . }}
<div class="service-item">
    <div class="service-time">
        <div class="scheduled-time">{{ .Std }}</div>
        {{- if .HasEstimatedTime }}
        <div class="estimated-time">{{ .Etd }}</div>
        {{- end }}
    </div>
    <div class="service-details">
        <div class="destination">{{ .Destination }}</div>
        <div class="operator">{{ .Operator }}</div>
    </div>
    <div class="service-status status-{{ .StatusClass }}">{{ .Status }}</div>
</div>
{{- end }}
{{- end -}}

{{- define "placeholder" -}}
<div class="loading">{{ . }}</div>
{{- end -}}

{{- define "error" -}}
<div class="loading" style="color: #ff6b6b;">{{ . }}</div>
{{- end -}}
`))

func executePanelTemplate(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer

	if err := panelTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "cannot render %s markup", name)
	}

	// Output of html/template is escaped for the HTML body context.
	return template.HTML(buf.String()), nil
}

// RenderServices renders one row per service in the order given, or the
// "No services" placeholder for an empty list.
func RenderServices(services []model.Service) (template.HTML, error) {
	if len(services) == 0 {
		return RenderPlaceholder(NoServicesMessage)
	}

	return executePanelTemplate("services", services)
}

func RenderPlaceholder(message string) (template.HTML, error) {
	return executePanelTemplate("placeholder", message)
}

func RenderError(message string) (template.HTML, error) {
	return executePanelTemplate("error", message)
}
