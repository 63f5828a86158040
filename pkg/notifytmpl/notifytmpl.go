// Package notifytmpl renders the owner notification emails sent when the
// public site receives a reservation or a contact message.
package notifytmpl

import (
	"fmt"

	"github.com/osteele/liquid"
)

type Kind string

const (
	KindReservation Kind = "reservation"
	KindMessage     Kind = "message"
)

type Template struct {
	Subject string
	HTML    string
	Text    string
}

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

var defaults = map[Kind]Template{
	KindReservation: {
		Subject: "New reservation: {{ reservation.name }} ({{ reservation.guests }} guests, {{ reservation.date }} {{ reservation.time }})",
		HTML: `<h2>New reservation at {{ restaurant }}</h2>
<ul>
<li><strong>Name:</strong> {{ reservation.name }}</li>
<li><strong>Email:</strong> {{ reservation.email }}</li>
<li><strong>Phone:</strong> {{ reservation.phone | default: "not given" }}</li>
<li><strong>When:</strong> {{ reservation.date }} at {{ reservation.time }}</li>
<li><strong>Guests:</strong> {{ reservation.guests }}</li>
</ul>
{% if reservation.specialRequests != "" %}<p><strong>Special requests:</strong> {{ reservation.specialRequests | escape }}</p>{% endif %}`,
		Text: `New reservation at {{ restaurant }}
Name: {{ reservation.name }}
Email: {{ reservation.email }}
Phone: {{ reservation.phone | default: "not given" }}
When: {{ reservation.date }} at {{ reservation.time }}
Guests: {{ reservation.guests }}{% if reservation.specialRequests != "" %}
Special requests: {{ reservation.specialRequests }}{% endif %}`,
	},
	KindMessage: {
		Subject: "New message from {{ message.name }}{% if message.subject != \"\" %}: {{ message.subject }}{% endif %}",
		HTML: `<h2>New contact message for {{ restaurant }}</h2>
<p><strong>From:</strong> {{ message.name }} &lt;{{ message.email }}&gt;</p>
<p>{{ message.message | escape | newline_to_br }}</p>`,
		Text: `New contact message for {{ restaurant }}
From: {{ message.name }} <{{ message.email }}>

{{ message.message }}`,
	},
}

// Renderer holds a liquid engine and the templates per kind
type Renderer struct {
	engine    *liquid.Engine
	templates map[Kind]Template
}

func NewRenderer() *Renderer {
	templates := make(map[Kind]Template, len(defaults))
	for k, v := range defaults {
		templates[k] = v
	}
	return &Renderer{engine: liquid.NewEngine(), templates: templates}
}

// Override replaces the template used for kind
func (r *Renderer) Override(kind Kind, tpl Template) {
	r.templates[kind] = tpl
}

func (r *Renderer) Render(kind Kind, data map[string]interface{}) (Rendered, error) {
	tpl, ok := r.templates[kind]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown notification template: %s", kind)
	}

	var out Rendered
	parts := []struct {
		name string
		src  string
		dst  *string
	}{
		{"subject", tpl.Subject, &out.Subject},
		{"html", tpl.HTML, &out.HTML},
		{"text", tpl.Text, &out.Text},
	}
	for _, p := range parts {
		if p.src == "" {
			continue
		}
		rendered, err := r.engine.ParseAndRenderString(p.src, data)
		if err != nil {
			return Rendered{}, fmt.Errorf("liquid rendering failed for %s %s: %w", kind, p.name, err)
		}
		*p.dst = rendered
	}
	return out, nil
}
