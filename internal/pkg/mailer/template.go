package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

const (
	TemplateResetPassword    = "reset_password"
	TemplateSubscribeConfirm = "subscribe_confirm"
	TemplateNewsletter       = "newsletter"
)

// Render fills the named template set and returns a message addressed to to.
func Render(name, to string, data interface{}) (Message, error) {
	subject, err := renderFile(name+"_subject.txt", data, false)
	if err != nil {
		return Message{}, fmt.Errorf("render subject -> %w", err)
	}
	html, err := renderFile(name+".html", data, true)
	if err != nil {
		return Message{}, fmt.Errorf("render html -> %w", err)
	}
	text, err := renderFile(name+".txt", data, false)
	if err != nil {
		return Message{}, fmt.Errorf("render text -> %w", err)
	}

	return Message{
		To:      to,
		Subject: strings.TrimSpace(subject),
		HTML:    html,
		Text:    text,
	}, nil
}

func renderFile(name string, data interface{}, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if html {
		t, err := htmltemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
