// Package render produces the attendee-facing artifacts: links, QR images
// and the printable voucher.
package render

import (
	"net/url"
	"strings"
)

// Links builds absolute URLs against the public origin of the web app.
type Links struct {
	Origin string
}

func NewLinks(origin string) Links {
	return Links{Origin: strings.TrimRight(origin, "/")}
}

func (l Links) ActivationURL(qrToken string) string {
	return l.Origin + "/activate/" + url.PathEscape(qrToken)
}

func (l Links) ConfirmationURL(voucherCode string) string {
	return l.Origin + "/confirmation?code=" + url.QueryEscape(voucherCode)
}
