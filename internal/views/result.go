package views

import (
	"net/http"

	"github.com/Tanupriya0912/Job-portal/internal/gateway"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

// Notice is a message the browser shows once, in place of a modal dialog.
type Notice struct {
	Kind  NoticeKind `json:"kind"`
	Title string     `json:"title"`
	Text  string     `json:"text"`
}

// Result is what a view renders. At most one of Empty, Denied and Error is
// set; Data may accompany a Notice.
type Result struct {
	Data     any     `json:"data,omitempty"`
	Empty    string  `json:"empty,omitempty"`
	Denied   string  `json:"denied,omitempty"`
	Error    string  `json:"error,omitempty"`
	Notice   *Notice `json:"notice,omitempty"`
	Redirect string  `json:"redirect,omitempty"`

	status int
}

// HTTPStatus maps the result onto a response code for the BFF surface.
func (r Result) HTTPStatus() int {
	switch {
	case r.status != 0:
		return r.status
	case r.Denied != "":
		return http.StatusForbidden
	case r.Error != "":
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func data(v any) Result { return Result{Data: v} }

func empty(text string) Result { return Result{Empty: text} }

func denied(text string) Result { return Result{Denied: text} }

func loadFailed(err error, fallback string) Result {
	return Result{Error: gateway.ErrorMessage(err, fallback), status: statusFor(err)}
}

func success(title, text string) Result {
	return Result{Notice: &Notice{Kind: NoticeSuccess, Title: title, Text: text}}
}

func warning(status int, title, text string) Result {
	return Result{Notice: &Notice{Kind: NoticeWarning, Title: title, Text: text}, status: status}
}

func failure(err error, title, fallback string) Result {
	return Result{
		Notice: &Notice{Kind: NoticeError, Title: title, Text: gateway.ErrorMessage(err, fallback)},
		status: statusFor(err),
	}
}

func rejected(status int, title, text string) Result {
	return Result{Notice: &Notice{Kind: NoticeError, Title: title, Text: text}, status: status}
}

// statusFor passes backend client errors through and reports everything
// else as a gateway failure.
func statusFor(err error) int {
	if s := gateway.StatusOf(err); s >= 400 && s < 500 {
		return s
	}
	return http.StatusBadGateway
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
