package inquiries

import (
	"fmt"
	"html"
	"strings"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
)

func itemListHTML(items []models.InquiryItem) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		fmt.Fprintf(&b, "<li><strong>%s</strong> &times; %d bags (%s)</li>",
			html.EscapeString(item.CoffeeName),
			item.Quantity,
			html.EscapeString(item.PreferredLocation.Label()),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}

func adminInquiryHTML(user *models.User, inquiry *models.Inquiry, itemList, dashboardBaseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>New inquiry from <strong>%s</strong> (%s, %s).</p>",
		html.EscapeString(user.CompanyName),
		html.EscapeString(user.ContactPerson),
		html.EscapeString(user.Email),
	)
	phone := "N/A"
	if user.Phone != nil && strings.TrimSpace(*user.Phone) != "" {
		phone = *user.Phone
	}
	fmt.Fprintf(&b, "<p>Phone: %s</p>", html.EscapeString(phone))
	b.WriteString(itemList)
	target := "N/A"
	if inquiry.TargetShipmentDate != nil {
		target = inquiry.TargetShipmentDate.Format("2 January 2006")
	}
	fmt.Fprintf(&b, "<p>Target shipment: %s</p>", target)
	message := "No message provided."
	if inquiry.Message != nil && strings.TrimSpace(*inquiry.Message) != "" {
		message = *inquiry.Message
	}
	fmt.Fprintf(&b, "<p>Message: %s</p>", html.EscapeString(message))
	fmt.Fprintf(&b, `<p><a href="%s/admin/inquiries">Open in dashboard</a></p>`,
		strings.TrimRight(dashboardBaseURL, "/"))
	return b.String()
}

func buyerInquiryHTML(user *models.User, itemList string) string {
	name := strings.TrimSpace(user.ContactPerson)
	if name == "" {
		name = "there"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p><p>Thank you for your inquiry. Our export team will review it and reply with pricing and shipment details.</p>",
		html.EscapeString(name))
	b.WriteString(itemList)
	b.WriteString("<p>You requested the lots above. We will be in touch shortly.</p>")
	return b.String()
}
