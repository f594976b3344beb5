package problem

import (
	"net/http"
	"strings"
)

const (
	// BaseURI prefixes every problem type owned by this service.
	BaseURI = "https://errors.taster.com/metadata"

	// BlankType is the RFC 9457 type for problems with no extra semantics.
	BlankType = "about:blank"

	ContentType = "application/problem+json"

	// DefaultStatus is the response status when a problem reports none.
	DefaultStatus = http.StatusBadRequest

	// RetryAfterSeconds is advertised when the database is unavailable.
	RetryAfterSeconds = 120
)

// TypeURI joins segments under BaseURI.
//
//	TypeURI("domains", "not-found") // https://errors.taster.com/metadata/domains/not-found
func TypeURI(segments ...string) string {
	if len(segments) == 0 {
		return BaseURI
	}
	return BaseURI + "/" + strings.Join(segments, "/")
}

// Problem is the minimal contract of an RFC 9457 problem.
type Problem interface {
	Type() string
	Title() string
	Detail() string
}

// StatusProblem carries the HTTP status. Without it the response uses DefaultStatus
// and the body has no status member.
type StatusProblem interface {
	Problem
	Status() int
}

// InstanceProblem identifies the specific occurrence of the problem.
type InstanceProblem interface {
	Problem
	Instance() string
}

// HeaderProblem adds response headers, such as Retry-After.
type HeaderProblem interface {
	Problem
	Headers() http.Header
}

// Parts is the flattened view of a problem, ready to be encoded.
type Parts struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Detail   string      `json:"detail"`
	Status   int         `json:"status,omitempty"`
	Instance string      `json:"instance,omitempty"`
	Headers  http.Header `json:"-"`
}

// StatusCode returns Status or DefaultStatus when absent.
func (p Parts) StatusCode() int {
	if p.Status == 0 {
		return DefaultStatus
	}
	return p.Status
}

// PartsOf collects every member p exposes through the optional refinements.
// An empty type becomes about:blank. Returned headers are a copy.
func PartsOf(p Problem) Parts {
	parts := Parts{
		Type:   p.Type(),
		Title:  p.Title(),
		Detail: p.Detail(),
	}
	if parts.Type == "" {
		parts.Type = BlankType
	}
	if sp, ok := p.(StatusProblem); ok {
		parts.Status = sp.Status()
	}
	if ip, ok := p.(InstanceProblem); ok {
		parts.Instance = ip.Instance()
	}
	if hp, ok := p.(HeaderProblem); ok {
		parts.Headers = hp.Headers().Clone()
	}
	return parts
}
