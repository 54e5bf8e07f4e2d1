package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/printing"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
)

// Recipient labels for metrics
const (
	RecipientCustomer = "customer"
	RecipientBusiness = "business"
)

// PaymentAccount is shown to customers who pay by transfer
type PaymentAccount struct {
	AccountTitle  string
	AccountNumber string
	Branch        string
}

// NotifierConfig configures the order emails
type NotifierConfig struct {
	From       string
	BusinessTo string
	Currency   string
	StoreName  string
	Bank       PaymentAccount
	JazzCash   PaymentAccount
}

// NotifierConfigFrom maps application config
func NotifierConfigFrom(app config.AppConfig, cfg config.EmailConfig, storeName string) NotifierConfig {
	return NotifierConfig{
		From:       cfg.From,
		BusinessTo: cfg.BusinessTo,
		Currency:   app.Currency,
		StoreName:  storeName,
		Bank:       PaymentAccount(cfg.Bank),
		JazzCash:   PaymentAccount(cfg.JazzCash),
	}
}

// OrderNotifier composes and sends the order confirmation to the customer
// and the new-order notification to the business.
type OrderNotifier struct {
	sender   Sender
	cfg      NotifierConfig
	customer *template.Template
	business *template.Template
	metrics  *telemetry.StoreMetrics
}

// NewOrderNotifier parses the email templates
func NewOrderNotifier(sender Sender, cfg NotifierConfig, metrics *telemetry.StoreMetrics) *OrderNotifier {
	funcs := printing.FuncMap(cfg.Currency)
	return &OrderNotifier{
		sender:   sender,
		cfg:      cfg,
		customer: template.Must(template.New("customer").Funcs(funcs).Parse(layout + customerBody)),
		business: template.Must(template.New("business").Funcs(funcs).Parse(layout + businessBody)),
		metrics:  metrics,
	}
}

type emailData struct {
	StoreName string
	Order     *order.Order
	Payment   string
	Account   *PaymentAccount
	Wallet    bool
}

func (n *OrderNotifier) data(o *order.Order) emailData {
	d := emailData{StoreName: n.cfg.StoreName, Order: o, Payment: o.PaymentMethod.Label()}
	switch o.PaymentMethod {
	case order.PaymentBankTransfer:
		d.Account = &n.cfg.Bank
	case order.PaymentJazzCash:
		d.Account = &n.cfg.JazzCash
		d.Wallet = true
	}
	return d
}

// CustomerSubject is the subject line of the confirmation email
func CustomerSubject(o *order.Order) string {
	return "Order Confirmation - " + o.OrderNumber
}

// BusinessSubject is the subject line of the new-order email
func BusinessSubject(currency string, o *order.Order) string {
	return fmt.Sprintf("New Order - %s - %s", o.OrderNumber, printing.FormatMoney(currency, o.Total))
}

// OrderConfirmation emails the customer
func (n *OrderNotifier) OrderConfirmation(ctx context.Context, o *order.Order) error {
	return n.send(ctx, RecipientCustomer, n.customer, o.Customer.Email, CustomerSubject(o), o)
}

// OrderNotification emails the business inbox
func (n *OrderNotifier) OrderNotification(ctx context.Context, o *order.Order) error {
	return n.send(ctx, RecipientBusiness, n.business, n.cfg.BusinessTo, BusinessSubject(n.cfg.Currency, o), o)
}

func (n *OrderNotifier) send(ctx context.Context, recipient string, tmpl *template.Template, to, subject string, o *order.Order) error {
	if to == "" {
		n.metrics.Email(ctx, recipient, telemetry.StatusSkipped)
		return fmt.Errorf("email: no %s address for order %s", recipient, o.OrderNumber)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, n.data(o)); err != nil {
		n.metrics.Email(ctx, recipient, telemetry.StatusFailed)
		return fmt.Errorf("email: render %s: %w", recipient, err)
	}

	err := n.sender.Send(ctx, Message{
		From:    n.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    buf.String(),
	})
	if err != nil {
		n.metrics.Email(ctx, recipient, telemetry.StatusFailed)
		return err
	}
	n.metrics.Email(ctx, recipient, telemetry.StatusSent)
	return nil
}

const layout = `{{define "items"}}
<table style="width:100%;border-collapse:collapse">
  <tr><th align="left">Product</th><th align="right">Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
  {{range .Order.Items}}
  <tr>
    <td>{{.Name}}{{if .Size}} ({{.Size}}){{end}}{{if .Color}} - {{.Color}}{{end}}</td>
    <td align="right">{{.Quantity}}</td>
    <td align="right">{{money .Price}}</td>
    <td align="right">{{lineTotal .Price .Quantity}}</td>
  </tr>
  {{end}}
</table>
<p>Subtotal: {{money .Order.Subtotal}}<br>
Delivery: {{if free .Order.DeliveryFee}}Free{{else}}{{money .Order.DeliveryFee}}{{end}}<br>
<strong>Total: {{money .Order.Total}}</strong></p>
{{end}}`

const customerBody = `<div style="font-family:Arial,sans-serif">
<h2>Thank you for your order, {{.Order.Customer.Name}}!</h2>
<p>Your order <strong>{{.Order.OrderNumber}}</strong> has been received and is being processed.</p>
{{template "items" .}}
<p>Payment method: {{.Payment}}</p>
{{with .Account}}
<h3>Payment instructions</h3>
<p>Please transfer the total amount to the {{if $.Wallet}}JazzCash account{{else}}bank account{{end}} below and reply with your receipt, quoting your order number.</p>
<p>Account title: {{.AccountTitle}}<br>
Account number: {{.AccountNumber}}{{with .Branch}}<br>
Bank: {{.}}{{end}}</p>
{{end}}
<h3>Delivery address</h3>
<p>{{.Order.Customer.Address}}<br>{{.Order.Customer.City}}{{with .Order.Customer.PostalCode}} {{.}}{{end}}</p>
<p>{{.StoreName}}</p>
</div>`

const businessBody = `<div style="font-family:Arial,sans-serif">
<h2>New order {{.Order.OrderNumber}}</h2>
<p>Placed {{dateTime .Order.CreatedAt}}. Payment: {{.Payment}}.</p>
<h3>Customer</h3>
<p>{{.Order.Customer.Name}}<br>
{{.Order.Customer.Email}}<br>
{{.Order.Customer.Phone}}<br>
{{.Order.Customer.Address}}, {{.Order.Customer.City}}{{with .Order.Customer.PostalCode}} {{.}}{{end}}</p>
{{template "items" .}}
</div>`
