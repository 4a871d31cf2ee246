package render

// Template 1: single-column layout, neutral typography. This is also the
// fallback document for unknown template ids.
const classicTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    @page { size: A4; margin: 12mm; }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #ffffff;
      font-size: 13px;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      max-width: 760px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 28px;
    }
    .header h1 {
      margin: 0;
      font-size: 22px;
      font-weight: 700;
    }
    .header-right { text-align: right; }
    .header-right img { max-height: 48px; }
    .label {
      font-size: 10px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 4px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 13px; line-height: 1.45; }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      gap: 16px;
      margin-bottom: 28px;
    }
    .col { flex: 1; }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 20px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 10px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 8px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 10px 0;
      border-bottom: 1px solid #e3e8ee;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .item-title { font-weight: 600; margin-bottom: 2px; }
    .item-sub { font-size: 11px; color: #697386; }
    .totals {
      display: flex;
      flex-direction: column;
      align-items: flex-end;
      margin-bottom: 24px;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 260px;
      padding: 4px 0;
    }
    .total-label { color: #697386; }
    .total-value { font-weight: 500; text-align: right; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 6px;
      padding-top: 8px;
      font-weight: 700;
      font-size: 15px;
    }
    .total-words {
      width: 260px;
      text-align: right;
      font-size: 11px;
      color: #697386;
      font-style: italic;
    }
    .footer-grid {
      display: flex;
      gap: 24px;
      border-top: 1px solid #e3e8ee;
      padding-top: 16px;
      font-size: 12px;
    }
    .signature { margin-top: 24px; text-align: right; }
    .signature img { max-height: 60px; }
    .signature-typed { font-size: 26px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div>
        <h1>Invoice</h1>
        <div class="label" style="margin-top: 10px;">Invoice number</div>
        <div class="value">{{.Invoice.Number}}</div>
      </div>
      <div class="header-right">
        {{if .Invoice.LogoURL}}<img src="{{.Invoice.LogoURL}}" alt="{{.Sender.Name}}">{{else}}<div class="value" style="font-weight:600;">{{.Sender.Name}}</div>{{end}}
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">From</div>
        <div class="value">
          <strong>{{.Sender.Name}}</strong><br>
          {{if .Sender.Address}}{{.Sender.Address}}<br>{{end}}
          {{if .Sender.City}}{{.Sender.City}} {{.Sender.ZipCode}}<br>{{end}}
          {{if .Sender.Country}}{{.Sender.Country}}<br>{{end}}
          {{.Sender.Email}}
        </div>
      </div>
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Receiver.Name}}</strong><br>
          {{if .Receiver.Address}}{{.Receiver.Address}}<br>{{end}}
          {{if .Receiver.City}}{{.Receiver.City}} {{.Receiver.ZipCode}}<br>{{end}}
          {{if .Receiver.Country}}{{.Receiver.Country}}<br>{{end}}
          {{.Receiver.Email}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 160px;">
        <div class="label">Date issued</div>
        <div class="value">{{formatDate .Invoice.InvoiceDate}}</div>
        <div class="label" style="margin-top: 12px;">Date due</div>
        <div class="value">{{formatDate .Invoice.DueDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Item</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Rate</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>
            <div class="item-title">{{.Name}}</div>
            {{if .Description}}<div class="item-sub">{{.Description}}</div>{{end}}
          </td>
          <td class="td-right">{{formatQuantity .Quantity}}</td>
          <td class="td-right">{{formatMoney .UnitPrice $.Invoice.Currency}}</td>
          <td class="td-right" style="font-weight: 500;">{{formatMoney .Total $.Invoice.Currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Subtotal</span>
        <span class="total-value">{{formatMoney .Totals.SubTotal .Invoice.Currency}}</span>
      </div>
      {{range .Totals.Charges}}
      <div class="total-row">
        <span class="total-label">{{.Label}}</span>
        <span class="total-value">{{if .Negative}}-{{end}}{{formatMoney .Amount $.Invoice.Currency}}</span>
      </div>
      {{end}}
      <div class="total-row total-final">
        <span>Total</span>
        <span class="total-value">{{formatMoney .Totals.Total .Invoice.Currency}}</span>
      </div>
      <div class="total-words">{{.Totals.TotalInWords}}</div>
    </div>

    <div class="footer-grid">
      {{if .Invoice.AdditionalNotes}}
      <div class="col">
        <div class="label">Additional notes</div>
        <div class="value">{{.Invoice.AdditionalNotes}}</div>
      </div>
      {{end}}
      {{if .Invoice.PaymentTerms}}
      <div class="col">
        <div class="label">Payment terms</div>
        <div class="value">{{.Invoice.PaymentTerms}}</div>
      </div>
      {{end}}
      {{if .Invoice.Payment.AccountNumber}}
      <div class="col">
        <div class="label">Payment details</div>
        <div class="value">
          {{if .Invoice.Payment.BankName}}{{.Invoice.Payment.BankName}}<br>{{end}}
          {{if .Invoice.Payment.AccountName}}{{.Invoice.Payment.AccountName}}<br>{{end}}
          {{.Invoice.Payment.AccountNumber}}
        </div>
      </div>
      {{end}}
    </div>

    {{if .Signature.Present}}
    <div class="signature">
      <div class="label">Signature</div>
      {{if .Signature.IsImage}}
      <img src="{{.Signature.Data}}" alt="Signature">
      {{else}}
      <span class="signature-typed" style="font-family: {{.Signature.FontFamily}}; color: {{.Signature.Color}};">{{.Signature.Data}}</span>
      {{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`
