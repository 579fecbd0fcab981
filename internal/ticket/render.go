package ticket

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

const qrSize = 160

// Renderer produces the printable HTML document for an order: one page
// per kitchen ticket followed by the packing/customer page.
type Renderer struct {
	trackingBaseURL string
	tmpl            *template.Template
}

func NewRenderer(trackingBaseURL string) *Renderer {
	return &Renderer{
		trackingBaseURL: strings.TrimRight(trackingBaseURL, "/"),
		tmpl:            template.Must(template.New("tickets").Parse(documentTemplate)),
	}
}

type headerView struct {
	Title        string
	Brand        string
	Ref          string
	CreatedAt    string
	OrderType    string
	CustomerName string
	Phone        string
	Address      string
	Instructions string
}

type kitchenPageView struct {
	Header headerView
	Rows   []Line
}

type packingRowView struct {
	Name      string
	Quantity  int
	LineTotal string
}

type documentView struct {
	Ref          string
	KitchenPages []kitchenPageView
	Header       headerView
	PackingRows  []packingRowView
	Total        string
	QR           template.URL
}

// RenderHTML renders the full document set for the order.
func (r *Renderer) RenderHTML(order *model.Order) ([]byte, error) {
	set := Generate(order)

	header := func(title, brand string) headerView {
		h := headerView{
			Title:        title,
			Brand:        brand,
			Ref:          order.Ref(),
			CreatedAt:    order.CreatedAt.Format(time.RFC1123),
			OrderType:    strings.ToUpper(order.OrderType),
			CustomerName: order.CustomerInfo.Name,
			Phone:        order.CustomerInfo.Phone,
			Instructions: order.SpecialInstructions,
		}
		if order.OrderType == enum.OrderTypeDelivery {
			h.Address = order.CustomerInfo.Address
		}
		return h
	}

	view := documentView{
		Ref:    order.Ref(),
		Header: header("Packing Sheet — Customer Copy", ""),
		Total:  money(set.Total),
	}

	for _, brand := range set.Brands {
		view.KitchenPages = append(view.KitchenPages, kitchenPageView{
			Header: header("Kitchen Ticket", brand),
			Rows:   set.Kitchen[brand],
		})
	}

	for _, line := range set.Packing {
		lineTotal := decimal.NewFromFloat(line.UnitPrice).
			Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.PackingRows = append(view.PackingRows, packingRowView{
			Name:      line.Name,
			Quantity:  line.Quantity,
			LineTotal: "£" + lineTotal.StringFixed(2),
		})
	}

	qr, err := r.trackingQR(order.ID)
	if err != nil {
		return nil, err
	}
	view.QR = qr

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render tickets: %w", err)
	}
	return buf.Bytes(), nil
}

// trackingQR encodes the order tracking URL as an inline PNG data URL.
func (r *Renderer) trackingQR(orderID string) (template.URL, error) {
	png, err := qrcode.Encode(r.trackingBaseURL+"/"+orderID, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode tracking qr: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

func money(v float64) string {
	return "£" + decimal.NewFromFloat(v).StringFixed(2)
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Order {{.Ref}} — Print</title>
<style>
  * { box-sizing: border-box; }
  body { font-family: system-ui, -apple-system, sans-serif; color: #111827; margin: 0; }
  .page { padding: 24px; min-height: 100vh; }
  .page + .page { page-break-before: always; }
  .header { text-align: center; border-bottom: 2px solid #E5E7EB; padding-bottom: 16px; margin-bottom: 20px; }
  h1 { font-size: 24px; margin: 0 0 8px 0; }
  h2 { font-size: 18px; margin: 0 0 12px 0; }
  .brand-header { background: #F3F4F6; padding: 8px 12px; border-radius: 6px; margin-bottom: 16px; }
  .meta { margin: 12px 0 20px 0; font-size: 13px; line-height: 1.4; color: #6B7280; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { padding: 12px 8px; font-size: 14px; }
  thead th { text-align: left; border-bottom: 2px solid #E5E7EB; background: #F9FAFB; }
  tbody tr + tr td { border-top: 1px solid #E5E7EB; }
  .qty, .price { text-align: right; }
  .totals { text-align: right; font-weight: 700; font-size: 16px; margin-top: 16px; padding-top: 12px; border-top: 2px solid #E5E7EB; }
  .qr { text-align: center; margin-top: 24px; }
  @media print { .page { padding: 20px; } }
</style>
</head>
<body>
{{- range .KitchenPages}}
<div class="page">
  {{template "header" .Header}}
  <table>
    <thead><tr><th>Item</th><th class="qty">Qty</th></tr></thead>
    <tbody>
    {{- range .Rows}}
      <tr><td>{{.Name}}</td><td class="qty">x{{.Quantity}}</td></tr>
    {{- end}}
    </tbody>
  </table>
</div>
{{- end}}
<div class="page">
  {{template "header" .Header}}
  <table>
    <thead><tr><th>Item</th><th class="qty">Qty</th><th class="price">Price</th></tr></thead>
    <tbody>
    {{- range .PackingRows}}
      <tr><td>{{.Name}}</td><td class="qty">x{{.Quantity}}</td><td class="price">{{.LineTotal}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  <div class="totals">Order Total: {{.Total}}</div>
  <div class="qr"><img src="{{.QR}}" alt="Track this order"></div>
</div>
<script>window.print();</script>
</body>
</html>
{{define "header"}}
<div class="header">
  <h1>Epping Food Court</h1>
  <h2>{{.Title}}</h2>
  {{if .Brand}}<div class="brand-header"><strong>Kitchen Team:</strong> {{.Brand}}</div>{{end}}
  <div class="meta">
    <div><strong>Order #{{.Ref}}</strong> &bull; {{.CreatedAt}}</div>
    <div>{{.OrderType}} &bull; {{.CustomerName}} &bull; {{.Phone}}</div>
    {{if .Address}}<div><strong>Delivery Address:</strong> {{.Address}}</div>{{end}}
    {{if .Instructions}}<div><strong>Special Instructions:</strong> {{.Instructions}}</div>{{end}}
  </div>
</div>
{{end}}`
