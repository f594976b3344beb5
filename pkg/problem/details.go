package problem

import (
	"net/http"
	"strconv"
)

// Details is a ready-made Problem implementing every refinement.
type Details struct {
	typ      string
	title    string
	detail   string
	status   int
	instance string
	headers  http.Header
}

// DetailsOption configures Details.
type DetailsOption func(*Details)

func WithStatus(status int) DetailsOption {
	return func(d *Details) {
		d.status = status
	}
}

func WithInstance(instance string) DetailsOption {
	return func(d *Details) {
		d.instance = instance
	}
}

// WithHeader adds a response header. It may be repeated.
func WithHeader(key, value string) DetailsOption {
	return func(d *Details) {
		if d.headers == nil {
			d.headers = http.Header{}
		}
		d.headers.Add(key, value)
	}
}

// WithRetryAfter sets Retry-After in seconds.
func WithRetryAfter(seconds int) DetailsOption {
	return func(d *Details) {
		if d.headers == nil {
			d.headers = http.Header{}
		}
		d.headers.Set("Retry-After", strconv.Itoa(seconds))
	}
}

func NewDetails(typ, title, detail string, opts ...DetailsOption) *Details {
	d := &Details{typ: typ, title: title, detail: detail}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Details) Type() string     { return d.typ }
func (d *Details) Title() string    { return d.title }
func (d *Details) Detail() string   { return d.detail }
func (d *Details) Status() int      { return d.status }
func (d *Details) Instance() string { return d.instance }

func (d *Details) Headers() http.Header {
	if d.headers == nil {
		return http.Header{}
	}
	return d.headers
}

func (d *Details) Error() string {
	if d.detail == "" {
		return d.title
	}
	return d.title + " " + d.detail
}
