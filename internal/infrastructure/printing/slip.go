package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
)

// Seller is the business block printed on every slip
type Seller struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// SlipRenderer renders the printable order slip
type SlipRenderer struct {
	tmpl   *template.Template
	seller Seller
	now    func() time.Time
}

// NewSlipRenderer parses the slip template
func NewSlipRenderer(currency string, seller Seller) *SlipRenderer {
	return &SlipRenderer{
		tmpl:   template.Must(template.New("slip").Funcs(FuncMap(currency)).Parse(slipTemplate)),
		seller: seller,
		now:    time.Now,
	}
}

type slipData struct {
	Seller    Seller
	Order     *order.Order
	Payment   string
	PrintedAt time.Time
}

// RenderHTML returns the complete slip document for o
func (r *SlipRenderer) RenderHTML(o *order.Order) ([]byte, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, slipData{
		Seller:    r.seller,
		Order:     o,
		Payment:   o.PaymentMethod.Label(),
		PrintedAt: r.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("render slip %s: %w", o.OrderNumber, err)
	}
	return buf.Bytes(), nil
}

const slipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Order Slip {{.Order.OrderNumber}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 20px; margin: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #ccc; padding: 6px; text-align: left; }
td.num, th.num { text-align: right; }
.header { display: flex; justify-content: space-between; }
.totals td { border: none; }
</style>
</head>
<body>
<div class="header">
  <div>
    <h1>{{.Seller.Name}}</h1>
    {{with .Seller.Address}}<div>{{.}}</div>{{end}}
    {{with .Seller.Phone}}<div>{{.}}</div>{{end}}
    {{with .Seller.Email}}<div>{{.}}</div>{{end}}
  </div>
  <div>
    <div><strong>Order:</strong> {{.Order.OrderNumber}}</div>
    <div><strong>Date:</strong> {{date .Order.CreatedAt}}</div>
    <div><strong>Status:</strong> {{title (printf "%s" .Order.Status)}}</div>
    <div><strong>Payment:</strong> {{.Payment}}</div>
  </div>
</div>

<h3>Ship to</h3>
<div>{{.Order.Customer.Name}}</div>
<div>{{.Order.Customer.Address}}</div>
<div>{{.Order.Customer.City}}{{with .Order.Customer.PostalCode}} {{.}}{{end}}</div>
<div>{{.Order.Customer.Phone}}</div>
<div>{{.Order.Customer.Email}}</div>

<table>
  <thead>
    <tr><th>#</th><th>Product</th><th>Variant</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
  </thead>
  <tbody>
  {{range .Order.Items}}
    <tr>
      <td>{{.LineNo}}</td>
      <td>{{.Name}}</td>
      <td>{{.Size}}{{if and .Size .Color}} / {{end}}{{.Color}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{money .Price}}</td>
      <td class="num">{{lineTotal .Price .Quantity}}</td>
    </tr>
  {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td class="num">Subtotal</td><td class="num">{{money .Order.Subtotal}}</td></tr>
  <tr><td class="num">Delivery</td><td class="num">{{if free .Order.DeliveryFee}}Free{{else}}{{money .Order.DeliveryFee}}{{end}}</td></tr>
  <tr><td class="num"><strong>Total</strong></td><td class="num"><strong>{{money .Order.Total}}</strong></td></tr>
</table>

<p>Printed {{dateTime .PrintedAt}}</p>
</body>
</html>
`
