// Package notify renders the three outbound email kinds and delivers the
// best-effort admin alerts. Bodies are self-contained HTML since operators
// read them in ordinary mail clients.
package notify

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"eshop/internal/domain"
)

type ActivationKind int

const (
	NewRegister ActivationKind = iota
	Reactivation
)

const (
	ActivationSubject    = "[ E-Shop Activation Email ]"
	NewUserAlertSubject  = "E-SHOP | NEW USER"
	NewOrderAlertSubject = "E-SHOP | NEW ORDER"

	joinedAtLayout = "02-01-2006 15:04:05"
)

// ComposeActivation builds the activation email. Reactivation greets the user
// with "Welcome back"; the link is embedded verbatim.
func ComposeActivation(kind ActivationKind, name, link string) (subject, htmlBody string) {
	welcome := "Welcome"
	if kind == Reactivation {
		welcome = "Welcome back"
	}
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Hi %s, %s to E-Shop. Please click on below link to active your account in E-Shop.</p>",
		html.EscapeString(name), welcome)
	fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, link, link)
	b.WriteString("</body></html>")
	return ActivationSubject, b.String()
}

// ComposeNewUserAlert builds the operator notification for a first-time
// account creation: a table of email, name and join timestamp.
func ComposeNewUserAlert(u *domain.User) (subject, htmlBody string) {
	var b strings.Builder
	b.WriteString(`<html><body style="background-color: #152238; color: #E0E0E0; font-family: 'Consolas'; padding: 20px;">`)
	b.WriteString(`<div style="max-width: 600px; margin: 0 auto; background-color: #192841; border-radius: 8px; padding: 10px 30px;">`)
	b.WriteString(`<h2 style="padding-bottom: 30px; text-align: center; border-bottom: 2px solid #1c2e4a;">User Details</h2>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;"><tbody>`)
	writeDetailRow(&b, "Email", u.Email)
	writeDetailRow(&b, "Name", u.Name)
	writeDetailRow(&b, "Date Joined", u.CreatedAt.Format(joinedAtLayout))
	b.WriteString(`</tbody></table></div></body></html>`)
	return NewUserAlertSubject, b.String()
}

// ComposeNewOrderAlert builds the operator notification for a placed order:
// one table row per line item plus the derived items total.
func ComposeNewOrderAlert(username string, o *domain.Order) (subject, htmlBody string) {
	var b strings.Builder
	b.WriteString(`<html><body style="background-color: #152238; color: #E0E0E0; font-family: 'Consolas'; padding: 20px;">`)
	b.WriteString(`<div style="max-width: 600px; margin: 0 auto; background-color: #192841; border-radius: 8px; padding: 10px 30px;">`)
	b.WriteString(`<h2 style="padding-bottom: 30px; text-align: center; border-bottom: 2px solid #1c2e4a;">Order Details</h2>`)
	fmt.Fprintf(&b, "<p>User: %s</p>", html.EscapeString(username))
	fmt.Fprintf(&b, "<p>Order ID: #%s</p>", o.ID)
	b.WriteString(`<hr style="border: 1px solid #1c2e4a;">`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString(`<thead><tr style="background-color: #23395d;">` +
		`<th style="padding: 12px; text-align: left;">Item Name</th>` +
		`<th style="padding: 12px; text-align: left;">Quantity</th>` +
		`<th style="padding: 12px; text-align: left;">Price</th>` +
		`</tr></thead><tbody>`)
	for _, it := range o.Items {
		fmt.Fprintf(&b, `<tr style="background-color: #203354;">`+
			`<td style="padding: 12px;">%s</td>`+
			`<td style="padding: 12px;">%d</td>`+
			`<td style="padding: 12px;">%s</td>`+
			`</tr>`,
			html.EscapeString(it.Name), it.Qty, formatPrice(it.Price))
	}
	b.WriteString(`</tbody></table>`)
	b.WriteString(`<hr style="border: 1px solid #1c2e4a;">`)
	fmt.Fprintf(&b, "<p>Total Price of Items: %s</p>", formatPrice(o.ItemsTotal()))
	b.WriteString(`</div></body></html>`)
	return NewOrderAlertSubject, b.String()
}

func writeDetailRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td style="padding: 12px; color: #B0BEC5;">%s</td><td style="padding: 12px; color: #E3F2FD;">%s</td></tr>`,
		label, html.EscapeString(value))
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
