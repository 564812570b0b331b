package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/exposeprofi/proposals/internal/proposal"
)

// Renderer turns a proposal summary into a notification email.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.New("proposal_created_html").Parse(proposalCreatedHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}
	text, err := texttemplate.New("proposal_created_text").Parse(proposalCreatedText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

func (r *Renderer) ProposalCreated(summary proposal.Summary, to []string) (*Email, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.Execute(&htmlBuf, summary); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}
	if err := r.text.Execute(&textBuf, summary); err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	return &Email{
		To:      to,
		Subject: fmt.Sprintf("Neues Angebot %s - %s", summary.OfferNumber, summary.Client.CompanyName),
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

const proposalCreatedText = `Neues Angebot erstellt

Angebotsnummer: {{.OfferNumber}}
Datei: {{.FileName}}

Kunde:
{{.Client.CompanyName}}
{{.Client.Street}}
{{.Client.PostalCode}} {{.Client.City}}
{{.Client.Country}}

Datum: {{.Project.Date}}
Gültig bis: {{.Project.OfferValidUntil}}
{{if .Project.DeliveryDays}}Lieferzeit: {{.Project.DeliveryDays}} Werktage
{{end}}
Netto: {{.Pricing.TotalNet}}
MwSt. (19%): {{.Pricing.TotalVAT}}
Brutto: {{.Pricing.TotalGross}}

Bilder: {{.ImagesIncluded}}
Erstellt von: {{.Signature.SignatureName}}
`

const proposalCreatedHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Neues Angebot</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #1f2937; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
    .totals td { padding: 4px 12px 4px 0; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Angebot {{.OfferNumber}}</h1>
    <p>{{.Client.CompanyName}}</p>
  </div>
  <div class="content">
    <p>{{.Client.Street}}<br>{{.Client.PostalCode}} {{.Client.City}}<br>{{.Client.Country}}</p>
    <p><strong>Datum:</strong> {{.Project.Date}}<br>
       <strong>Gültig bis:</strong> {{.Project.OfferValidUntil}}{{if .Project.DeliveryDays}}<br>
       <strong>Lieferzeit:</strong> {{.Project.DeliveryDays}} Werktage{{end}}</p>
    <table class="totals">
      <tr><td>Netto</td><td>{{.Pricing.TotalNet}}</td></tr>
      <tr><td>MwSt. (19%)</td><td>{{.Pricing.TotalVAT}}</td></tr>
      <tr><td><strong>Brutto</strong></td><td><strong>{{.Pricing.TotalGross}}</strong></td></tr>
    </table>
    <p>Datei: {{.FileName}}<br>Bilder: {{.ImagesIncluded}}<br>Erstellt von: {{.Signature.SignatureName}}</p>
  </div>
</body>
</html>
`
