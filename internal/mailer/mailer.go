package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/radheymart/storefront-backend/internal/order"
)

// Mailer emails order summaries to the shop's administrators. When
// credentials or recipients are missing it logs and skips, because
// checkout must never depend on mail delivery.
type Mailer struct {
	smtpAddr string
	user     string
	pass     string
}

func New(smtpAddr, user, pass string) *Mailer {
	return &Mailer{smtpAddr: smtpAddr, user: user, pass: pass}
}

func (m *Mailer) SendOrderNotification(to []string, ord order.Order, items []order.OrderItem) error {
	if m.user == "" || m.pass == "" {
		log.Println("mail credentials missing, skipping order notification")
		return nil
	}
	if len(to) == 0 {
		log.Println("no admin emails found, skipping order notification")
		return nil
	}

	subject := fmt.Sprintf("Radhey Mart - New Order #%d", ord.ID)
	body := renderOrderHTML(ord, items)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: Radhey Mart <%s>\r\n", m.user)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ","))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	host := m.smtpAddr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	auth := smtp.PlainAuth("", m.user, m.pass, host)
	return smtp.SendMail(m.smtpAddr, auth, m.user, to, []byte(msg.String()))
}

func renderOrderHTML(ord order.Order, items []order.OrderItem) string {
	var rows strings.Builder
	for _, it := range items {
		fmt.Fprintf(&rows, `
      <tr>
        <td>%s</td>
        <td>%d</td>
        <td>₹%.2f</td>
        <td>₹%.2f</td>
      </tr>`,
			it.Name, it.Quantity, it.Price, it.Price*float64(it.Quantity))
	}

	return fmt.Sprintf(`
      <h2>New Order Confirmed</h2>
      <p><b>Order ID:</b> %d</p>
      <p><b>User ID:</b> %d</p>
      <p><b>Total:</b> ₹%.2f</p>
      <table border="1" cellpadding="8" cellspacing="0">
        <thead><tr><th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr></thead>
        <tbody>%s</tbody>
      </table>`,
		ord.ID, ord.UserID, ord.Total, rows.String())
}
