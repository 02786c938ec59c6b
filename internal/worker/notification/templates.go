package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/odc-estimate/internal/domain"
)

// EnquiryEmail - готовое письмо о новой заявке
type EnquiryEmail struct {
	Subject string
	Text    string
	HTML    string
}

var templateFuncs = map[string]interface{}{
	"dash":  dash,
	"coord": coord,
}

const htmlBody = `<div style="font-family: Arial, sans-serif; font-size: 14px; color: #333;">
<h2 style="color: #0f172a;">New Transport Enquiry</h2>
<p>A new transport enquiry has been submitted with the following details:</p>

<h3>Customer Info</h3>
<ul>
<li><strong>Email:</strong> {{.Enquiry.Email}}</li>
<li><strong>Phone:</strong> {{.Enquiry.Phone}}</li>
</ul>

<h3>Route From</h3>
{{template "place" .FromPlace}}

<h3>Route To</h3>
{{template "place" .ToPlace}}

<h3>Truck Dimensions</h3>
<ul>
<li><strong>Length:</strong> {{.Enquiry.Length}}</li>
<li><strong>Width:</strong> {{.Enquiry.Width}}</li>
<li><strong>Height:</strong> {{.Enquiry.Height}}</li>
<li><strong>Weight:</strong> {{.Enquiry.Weight}}</li>
{{- if .VolumeM3}}
<li><strong>Approx Volume:</strong> {{coord .VolumeM3}} m³</li>
{{- end}}
{{- if .TruckClass}}
<li><strong>Truck Class:</strong> {{.TruckClass}}</li>
{{- end}}
</ul>

<p style="margin-top: 20px;">This is an automated notification from the ODC Estimate system.</p>
</div>
{{define "place"}}
{{- if .Summary}}<ul>
<li><strong>Label:</strong> {{.Summary.Label}}</li>
<li><strong>City/State:</strong> {{dash .Summary.City}} / {{dash .Summary.State}}</li>
<li><strong>Country:</strong> {{dash .Summary.Country}}</li>
<li><strong>Place ID:</strong> {{dash .Summary.PlaceID}}</li>
<li><strong>Coords:</strong> {{coord .Summary.Lat}}, {{coord .Summary.Lng}}</li>
</ul>
{{- else}}<p>{{.Text}}</p>{{end}}
{{- end}}`

const textBody = `New Transport Enquiry

Customer Info
  Email: {{.Enquiry.Email}}
  Phone: {{.Enquiry.Phone}}

Route From
{{template "place" .FromPlace}}
Route To
{{template "place" .ToPlace}}
Truck Dimensions
  Length: {{.Enquiry.Length}}
  Width: {{.Enquiry.Width}}
  Height: {{.Enquiry.Height}}
  Weight: {{.Enquiry.Weight}}
{{- if .VolumeM3}}
  Approx Volume: {{coord .VolumeM3}} m3
{{- end}}
{{- if .TruckClass}}
  Truck Class: {{.TruckClass}}
{{- end}}

This is an automated notification from the ODC Estimate system.
{{define "place"}}
{{- if .Summary}}  Label: {{.Summary.Label}}
  City/State: {{dash .Summary.City}} / {{dash .Summary.State}}
  Country: {{dash .Summary.Country}}
  Place ID: {{dash .Summary.PlaceID}}
  Coords: {{coord .Summary.Lat}}, {{coord .Summary.Lng}}
{{else}}  {{.Text}}
{{end}}
{{- end}}`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("enquiry").Funcs(templateFuncs).Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("enquiry").Funcs(templateFuncs).Parse(textBody))
)

type placeView struct {
	Summary *domain.PlaceSummary
	Text    string
}

type emailView struct {
	domain.EnquiryCreatedEvent
	FromPlace placeView
	ToPlace   placeView
}

// RenderEnquiryEmail собирает тему, текстовую и HTML версии письма
func RenderEnquiryEmail(event domain.EnquiryCreatedEvent) (EnquiryEmail, error) {
	view := emailView{
		EnquiryCreatedEvent: event,
		FromPlace:           placeView{Summary: event.From, Text: event.Enquiry.StartLocation},
		ToPlace:             placeView{Summary: event.To, Text: event.Enquiry.EndLocation},
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return EnquiryEmail{}, fmt.Errorf("failed to render html body: %w", err)
	}
	if err := textTmpl.Execute(&text, view); err != nil {
		return EnquiryEmail{}, fmt.Errorf("failed to render text body: %w", err)
	}

	return EnquiryEmail{
		Subject: fmt.Sprintf("Enquiry for survey route: %s → %s", event.Enquiry.StartLocation, event.Enquiry.EndLocation),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func coord(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
