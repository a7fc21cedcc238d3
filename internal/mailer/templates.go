package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/YusovID/journal-review-service/internal/domain"
)

const layout = `{{define "layout"}}<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #0369a1;">{{template "heading" .}}</h2>
<p>Dear {{.Name}},</p>
{{template "body" .}}
<p>Kind regards,<br>The Editorial Office</p>
</div>{{end}}`

const button = `{{define "button"}}<p><a href="{{.URL}}" style="background: #0369a1; color: white; padding: 10px 20px; text-decoration: none; display: inline-block; border-radius: 5px;">{{.Label}}</a></p>{{end}}`

var bodies = map[string]string{
	"welcome": `{{define "heading"}}Welcome aboard{{end}}
{{define "body"}}<p>Your account has been created.</p>
{{if .Pending}}<p>An editor will review your registration shortly. You will be able to sign in once it is approved.</p>
{{else}}<p>You can now sign in and submit manuscripts.</p>{{end}}
{{template "button" (link .BaseURL "/login" "Sign in")}}{{end}}`,

	"submitted": `{{define "heading"}}Submission received{{end}}
{{define "body"}}<p>Your manuscript <strong>"{{.Title}}"</strong> has been received.</p>
<p>Our editors will assess it and start the review process. We will keep you informed by email.</p>{{end}}`,

	"assigned": `{{define "heading"}}New review request{{end}}
{{define "body"}}<p>You have been assigned as a reviewer for the following manuscript:</p>
<p><strong>{{.Title}}</strong></p>
<p>Please sign in to read the manuscript and submit your report.</p>
{{template "button" (link .BaseURL (printf "/reviewer/articles/%s" .ArticleID) "Open manuscript")}}{{end}}`,

	"review_submitted": `{{define "heading"}}Review completed{{end}}
{{define "body"}}<p>A reviewer has completed the review of <strong>"{{.Title}}"</strong>.</p>
<p>Recommendation: <strong>{{.Recommendation}}</strong></p>
<p>Sign in to read the report and decide on the manuscript.</p>{{end}}`,

	"feedback": `{{define "heading"}}Editorial decision{{end}}
{{define "body"}}<p>The editor has responded to your manuscript <strong>"{{.Title}}"</strong>.</p>
<p style="font-size: 18px; font-weight: bold;">{{.Decision}}</p>
{{if .Feedback}}<p><strong>Editor comments:</strong><br>{{.Feedback}}</p>{{end}}
{{if .Published}}<p>Your article is now published and publicly available.</p>{{end}}{{end}}`,

	"approved": `{{define "heading"}}Account approved{{end}}
{{define "body"}}<p>Your {{.Role}} account has been approved. You can now sign in.</p>
{{template "button" (link .BaseURL "/login" "Sign in")}}{{end}}`,

	"rejected": `{{define "heading"}}Registration declined{{end}}
{{define "body"}}<p>We are sorry, your registration could not be approved.</p>
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}{{end}}`,
}

type buttonData struct {
	URL   string
	Label string
}

// Templates renders the journal's email bodies. Links are built against BaseURL.
type Templates struct {
	baseURL string
	set     map[string]*template.Template
}

func NewTemplates(baseURL string) (*Templates, error) {
	funcs := template.FuncMap{
		"link": func(base, path, label string) buttonData {
			return buttonData{URL: base + path, Label: label}
		},
	}

	set := make(map[string]*template.Template, len(bodies))

	for name, body := range bodies {
		t, err := template.New(name).Funcs(funcs).Parse(layout + button + body)
		if err != nil {
			return nil, fmt.Errorf("internal.mailer.NewTemplates: parse %s: %w", name, err)
		}

		set[name] = t
	}

	return &Templates{baseURL: strings.TrimRight(baseURL, "/"), set: set}, nil
}

func (t *Templates) render(name, to, subject string, data map[string]any) (Message, error) {
	data["BaseURL"] = t.baseURL

	var buf bytes.Buffer
	if err := t.set[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return Message{}, fmt.Errorf("internal.mailer.render: %s: %w", name, err)
	}

	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}

func (t *Templates) Welcome(u *domain.User) (Message, error) {
	return t.render("welcome", u.Email, "Welcome to the journal", map[string]any{
		"Name":    u.Name,
		"Pending": u.ApprovalStatus == domain.ApprovalPending,
	})
}

func (t *Templates) ArticleSubmitted(author *domain.User, a *domain.Article) (Message, error) {
	return t.render("submitted", author.Email, "Your submission has been received", map[string]any{
		"Name":  author.Name,
		"Title": a.Title,
	})
}

func (t *Templates) ReviewerAssigned(reviewer *domain.User, a *domain.Article) (Message, error) {
	return t.render("assigned", reviewer.Email, "New manuscript review request", map[string]any{
		"Name":      reviewer.Name,
		"Title":     a.Title,
		"ArticleID": a.ID,
	})
}

func (t *Templates) ReviewSubmitted(editor *domain.User, a *domain.Article, rec domain.Recommendation) (Message, error) {
	return t.render("review_submitted", editor.Email, "Review completed", map[string]any{
		"Name":           editor.Name,
		"Title":          a.Title,
		"Recommendation": recommendationText(rec),
	})
}

func (t *Templates) EditorFeedback(author *domain.User, a *domain.Article, feedback string, published bool) (Message, error) {
	decision := decisionText(a.Status)
	if published {
		decision = decisionText(domain.StatusPublished)
	}

	return t.render("feedback", author.Email, "Editorial decision: "+decision, map[string]any{
		"Name":      author.Name,
		"Title":     a.Title,
		"Decision":  decision,
		"Feedback":  feedback,
		"Published": published,
	})
}

func (t *Templates) UserApproved(u *domain.User) (Message, error) {
	return t.render("approved", u.Email, "Your account has been approved", map[string]any{
		"Name": u.Name,
		"Role": strings.ToLower(string(u.Role)),
	})
}

func (t *Templates) UserRejected(u *domain.User, reason string) (Message, error) {
	return t.render("rejected", u.Email, "Your registration was declined", map[string]any{
		"Name":   u.Name,
		"Reason": reason,
	})
}

func decisionText(s domain.ArticleStatus) string {
	switch s {
	case domain.StatusAccepted:
		return "Accepted"
	case domain.StatusRejected:
		return "Rejected"
	case domain.StatusRevisionRequested:
		return "Revision requested"
	case domain.StatusPublished:
		return "Published"
	case domain.StatusUnderReview:
		return "Under review"
	}

	return "Submitted"
}

func recommendationText(r domain.Recommendation) string {
	switch r {
	case domain.RecommendAccept:
		return "Accept"
	case domain.RecommendReject:
		return "Reject"
	case domain.RecommendMajorRevision:
		return "Major revision"
	case domain.RecommendMinorRevision:
		return "Minor revision"
	}

	return string(r)
}
