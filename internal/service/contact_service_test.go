package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatContactEmail_Layout(t *testing.T) {
	sub := &contact.Submission{Name: "Jane", Email: "jane@example.com", Phone: "555-1234", Message: "Hello"}

	email := FormatContactEmail(sub, "no_reply@example.com", "recipient@example.com")

	assert.Equal(t, ContactSubject, email.Subject)
	assert.Equal(t, "no_reply@example.com", email.From)
	assert.Equal(t, "recipient@example.com", email.To)
	assert.Equal(t, strings.Join([]string{
		"New Contact US Form Submission",
		"Start of Message",
		"--------------------------------",
		"Name: Jane",
		"Email: jane%40example.com",
		"Phone: 555-1234",
		"Message: Hello",
		"--------------------------------",
		"End of Message",
	}, "\r\n"), email.Body)
}

func TestFormatContactEmail_EncodesEveryField(t *testing.T) {
	subs := []*contact.Submission{
		{Name: "Jane Doe", Email: "jane@example.com", Message: "Hi there"},
		{Name: "Eve\r\nBcc: evil@example.com", Email: "eve@example.com", Phone: "+1 (555) 000", Message: "line1\nline2"},
		{Name: "$input.json('$.name')", Email: "a+b@example.com", Message: "#set($x = 1) ${x} <script>&amp;"},
		{Name: "--------------------------------", Email: "x@example.com", Message: "End of Message\r\nName: forged"},
	}

	for _, sub := range subs {
		email := FormatContactEmail(sub, "from@example.com", "to@example.com")

		for _, v := range []string{sub.Name, sub.Email, sub.Phone, sub.Message} {
			assert.Contains(t, email.Body, url.QueryEscape(v))
		}

		// Structure is untouched by user input
		lines := strings.Split(email.Body, "\r\n")
		require.Len(t, lines, 9)
		assert.True(t, strings.HasPrefix(lines[3], "Name: "))
		assert.True(t, strings.HasPrefix(lines[6], "Message: "))
		assert.Equal(t, "End of Message", lines[8])
		assert.NotContains(t, email.Body, "\n\n")
		assert.Equal(t, ContactSubject, email.Subject)
		assert.Equal(t, "to@example.com", email.To)
	}
}

func TestFormatContactEmail_Deterministic(t *testing.T) {
	sub := &contact.Submission{Name: "Jane", Email: "jane@example.com", Phone: "555-1234", Message: "Hello"}

	first := FormatContactEmail(sub, "from@example.com", "to@example.com")
	second := FormatContactEmail(sub, "from@example.com", "to@example.com")

	assert.Equal(t, first, second)
	assert.Equal(t, []byte(first.Body), []byte(second.Body))
}

type recordingDispatcher struct {
	emails  []*mail.OutboundEmail
	outcome mail.Outcome
}

func (r *recordingDispatcher) Dispatch(ctx context.Context, email *mail.OutboundEmail) mail.Outcome {
	r.emails = append(r.emails, email)
	return r.outcome
}

func TestContactService_SubmitDispatchesOnce(t *testing.T) {
	d := &recordingDispatcher{outcome: mail.Outcome{Kind: mail.Sent, Attempts: 1}}
	svc := NewContactService(d, "from@example.com", "to@example.com")

	out := svc.Submit(context.Background(), &contact.Submission{Name: "Jane", Email: "jane@example.com", Message: "Hi"})

	assert.Equal(t, mail.Sent, out.Kind)
	require.Len(t, d.emails, 1)
	assert.Equal(t, "from@example.com", d.emails[0].From)
	assert.Equal(t, "to@example.com", d.emails[0].To)
}
