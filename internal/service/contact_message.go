package service

import (
	"net/url"
	"strings"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/mail"
)

// ContactSubject is the fixed subject of every contact email
const ContactSubject = "Contact form submission"

const (
	contactSeparator = "--------------------------------"
	lineBreak        = "\r\n"
)

// FormatContactEmail renders a validated submission into an email. Every
// submitted value is query-escaped, so user text cannot add lines or
// otherwise change the layout. Addresses come from the caller's config.
func FormatContactEmail(sub *contact.Submission, from, to string) *mail.OutboundEmail {
	lines := []string{
		"New Contact US Form Submission",
		"Start of Message",
		contactSeparator,
		"Name: " + url.QueryEscape(sub.Name),
		"Email: " + url.QueryEscape(sub.Email),
		"Phone: " + url.QueryEscape(sub.Phone),
		"Message: " + url.QueryEscape(sub.Message),
		contactSeparator,
		"End of Message",
	}

	return &mail.OutboundEmail{
		Subject: ContactSubject,
		Body:    strings.Join(lines, lineBreak),
		To:      to,
		From:    from,
	}
}
