package utils

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/JasonLinn/bnb-breakfast/models"
)

// RenderedOrder is an order email ready to hand to a relay
type RenderedOrder struct {
	Subject string
	HTML    string
	Text    string
}

type itemGroup struct {
	Title    string
	Items    []models.OrderItem
	Subtotal int
}

type orderView struct {
	ShopName     string
	Timestamp    string
	DeliveryTime string
	RoomNumber   string
	OrderDate    string
	OrderNote    string
	Groups       []itemGroup
	TotalItems   int
	QuickCopy    string
}

const htmlOrderTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .header { background-color: #f59e0b; color: white; padding: 20px; text-align: center; }
  .content { padding: 20px; }
  .order-info { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 10px 0; }
  .items-table { width: 100%; border-collapse: collapse; margin: 15px 0; }
  .items-table th, .items-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  .items-table th { background-color: #f59e0b; color: white; }
  .total { font-weight: bold; font-size: 18px; color: #f59e0b; }
  .quick-copy { background-color: #fff7ed; padding: 10px; white-space: pre-wrap; font-family: monospace; }
  .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; }
</style>
</head>
<body>
<div class="header">
  <h1>🍳 新的早餐訂單</h1>
  <h2>{{.ShopName}}</h2>
</div>
<div class="content">
  <div class="order-info">
    <h3>📋 訂單資訊</h3>
    <p><strong>訂單時間:</strong> {{.Timestamp}}</p>
    <p><strong>房號:</strong> {{.RoomNumber}}</p>
    <p><strong>送餐時間:</strong> {{.DeliveryTime}}</p>
    <p><strong>送餐日期:</strong> {{.OrderDate}}</p>
    <p><strong>備註:</strong> {{.OrderNote}}</p>
    <p class="total"><strong>總計:</strong> {{.TotalItems}} 份</p>
  </div>
{{range .Groups}}
  <h3>🍽️ {{.Title}} ({{.Subtotal}} 份)</h3>
  <table class="items-table">
    <thead><tr><th>品項</th><th>數量</th></tr></thead>
    <tbody>
{{- range .Items}}
      <tr><td>{{.Name}}</td><td>{{.Quantity}} 份</td></tr>
{{- end}}
    </tbody>
  </table>
{{end}}
  <h3>📝 快速複製</h3>
  <div class="quick-copy">{{.QuickCopy}}</div>
  <div class="footer">
    <p>此郵件由 {{.ShopName}} 訂單系統 自動發送</p>
  </div>
</div>
</body>
</html>
`

const textOrderTemplate = `新的早餐訂單 - {{.ShopName}}

訂單時間: {{.Timestamp}}
房號: {{.RoomNumber}}
送餐時間: {{.DeliveryTime}}
送餐日期: {{.OrderDate}}
備註: {{.OrderNote}}
{{range .Groups}}
{{.Title}} ({{.Subtotal}}份):
{{- range .Items}}
  {{.Name}}: {{.Quantity}}份
{{- end}}
{{end}}
總計: {{.TotalItems}}份

快速複製:
{{.QuickCopy}}

---
此郵件由 {{.ShopName}} 訂單系統 自動發送
`

var (
	htmlOrder = htmltemplate.Must(htmltemplate.New("order.html").Parse(htmlOrderTemplate))
	textOrder = texttemplate.Must(texttemplate.New("order.txt").Parse(textOrderTemplate))
)

// Labels shown in place of absent optional fields
const (
	roomNotProvidedLabel = "未提供"
	dateUnspecifiedLabel = "未指定"
	noteNoneLabel        = "無"
)

// displayOptional maps an empty value or its wire sentinel to label
func displayOptional(v, sentinel, label string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == sentinel {
		return label
	}
	return v
}

func sumItems(items []models.OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func newOrderView(order models.OrderPayload, shopName string) orderView {
	v := orderView{
		ShopName:     shopName,
		Timestamp:    order.Timestamp,
		DeliveryTime: order.DeliveryTime,
		RoomNumber:   displayOptional(order.RoomNumber, models.RoomNotProvided, roomNotProvidedLabel),
		OrderDate:    displayOptional(order.OrderDate, models.DateUnspecified, dateUnspecifiedLabel),
		OrderNote:    displayOptional(order.OrderNote, models.NoteNone, noteNoneLabel),
	}
	if len(order.FoodItems) > 0 {
		v.Groups = append(v.Groups, itemGroup{Title: "餐點", Items: order.FoodItems, Subtotal: sumItems(order.FoodItems)})
	}
	if len(order.BeverageItems) > 0 {
		v.Groups = append(v.Groups, itemGroup{Title: "飲料", Items: order.BeverageItems, Subtotal: sumItems(order.BeverageItems)})
	}
	if len(v.Groups) == 0 && len(order.Items) > 0 {
		v.Groups = append(v.Groups, itemGroup{Title: "訂單明細", Items: order.Items, Subtotal: sumItems(order.Items)})
	}

	for _, g := range v.Groups {
		v.TotalItems += g.Subtotal
	}

	var qc strings.Builder
	fmt.Fprintf(&qc, "房號 %s / %s 送餐 / %s", v.RoomNumber, v.DeliveryTime, v.OrderDate)
	for _, g := range v.Groups {
		for _, it := range g.Items {
			fmt.Fprintf(&qc, "\n%s x%d", it.Name, it.Quantity)
		}
	}
	if v.OrderNote != noteNoneLabel {
		fmt.Fprintf(&qc, "\n備註: %s", v.OrderNote)
	}
	v.QuickCopy = qc.String()
	return v
}

// RenderOrder produces the subject and both bodies for an order notification
func RenderOrder(order models.OrderPayload, shopName string) (RenderedOrder, error) {
	v := newOrderView(order, shopName)

	var html, text bytes.Buffer
	if err := htmlOrder.Execute(&html, v); err != nil {
		return RenderedOrder{}, fmt.Errorf("failed to render html body: %w", err)
	}
	if err := textOrder.Execute(&text, v); err != nil {
		return RenderedOrder{}, fmt.Errorf("failed to render text body: %w", err)
	}

	return RenderedOrder{
		Subject: fmt.Sprintf("🍳 新訂單 - 房號 %s - %s 送餐 (%d份)", v.RoomNumber, v.DeliveryTime, v.TotalItems),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
