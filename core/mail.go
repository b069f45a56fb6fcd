package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	"sync"
	texttmpl "text/template"
)

var (
	textTemplates *texttmpl.Template
	htmlTemplates *htmltmpl.Template
	tmplInit      sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render populates TextContent and HTMLContent from BodyStr or the named template.
func (m *EmailMessage) Render(conf *Config) error {
	tmplInit.Do(parseEmailTemplates)

	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	data := ContextData{FrontendBaseURL: conf.FrontendBaseURL, Data: m.TemplateData}

	var buff bytes.Buffer
	if tmpl := textTemplates.Lookup(m.TemplateName); tmpl != nil {
		if err := tmpl.Execute(&buff, data); err != nil {
			return err
		}
		m.TextContent = buff.String()
	}

	buff.Reset()
	if tmpl := htmlTemplates.Lookup(m.TemplateName); tmpl != nil {
		if err := tmpl.Execute(&buff, data); err != nil {
			return err
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }

const (
	passwordResetTextTmpl = `{{define "password-reset"}}Hi {{.Data.Name}},

You requested a password reset for your account.
Follow this link to set a new password:

{{.FrontendBaseURL}}/password-reset/{{.Data.UID}}/{{.Data.Token}}

If you did not request this, you can safely ignore this email.
{{end}}`

	passwordResetHTMLTmpl = `{{define "password-reset"}}<p>Hi {{.Data.Name}},</p>
<p>You requested a password reset for your account.
Follow <a href="{{.FrontendBaseURL}}/password-reset/{{.Data.UID}}/{{.Data.Token}}">this link</a> to set a new password.</p>
<p>If you did not request this, you can safely ignore this email.</p>
{{end}}`

	assessmentApprovedTextTmpl = `{{define "assessment-approved"}}Hi {{.Data.AssessorName}},

Your ICT policy assessment of {{.Data.AssessmentDate}} has been approved.
Overall maturity: {{.Data.Stage}} ({{.Data.Score}}/100).

View the full report: {{.FrontendBaseURL}}/assessments/{{.Data.ID}}
{{end}}`

	assessmentApprovedHTMLTmpl = `{{define "assessment-approved"}}<p>Hi {{.Data.AssessorName}},</p>
<p>Your ICT policy assessment of {{.Data.AssessmentDate}} has been approved.<br>
Overall maturity: <b>{{.Data.Stage}}</b> ({{.Data.Score}}/100).</p>
<p><a href="{{.FrontendBaseURL}}/assessments/{{.Data.ID}}">View the full report</a></p>
{{end}}`
)

func parseEmailTemplates() {
	textTemplates = texttmpl.Must(texttmpl.New("email").Parse(passwordResetTextTmpl))
	textTemplates = texttmpl.Must(textTemplates.Parse(assessmentApprovedTextTmpl))

	htmlTemplates = htmltmpl.Must(htmltmpl.New("email").Parse(passwordResetHTMLTmpl))
	htmlTemplates = htmltmpl.Must(htmlTemplates.Parse(assessmentApprovedHTMLTmpl))
}
