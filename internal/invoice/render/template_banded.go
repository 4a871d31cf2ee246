package render

// Template 2: dark header band, zebra-striped item table.
const bandedTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    @page { size: A4; margin: 10mm; }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 0;
      font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
      color: #111827;
      background: #ffffff;
      font-size: 13px;
    }
    .band {
      background: #111827;
      color: #ffffff;
      padding: 28px 36px;
      display: flex;
      justify-content: space-between;
      align-items: center;
    }
    .band h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
      letter-spacing: 1px;
      text-transform: uppercase;
    }
    .band .number { color: #9ca3af; font-size: 13px; margin-top: 4px; }
    .band img { max-height: 44px; }
    .band .company { font-size: 16px; font-weight: 600; }
    .content { padding: 28px 36px; }
    .label {
      font-size: 10px;
      text-transform: uppercase;
      color: #6b7280;
      font-weight: 700;
      letter-spacing: 0.4px;
      margin-bottom: 4px;
    }
    .value { line-height: 1.45; }
    .parties {
      display: flex;
      gap: 28px;
      margin-bottom: 24px;
    }
    .parties .col { flex: 1; }
    .dates { flex: 0 0 150px; }
    .dates .value { margin-bottom: 10px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 18px; }
    th {
      background: #111827;
      color: #ffffff;
      text-align: left;
      font-size: 10px;
      text-transform: uppercase;
      letter-spacing: 0.4px;
      padding: 8px 10px;
    }
    td { padding: 9px 10px; }
    tbody tr:nth-child(even) { background: #f3f4f6; }
    .td-right { text-align: right; }
    .item-title { font-weight: 600; }
    .item-sub { font-size: 11px; color: #6b7280; }
    .summary { display: flex; justify-content: flex-end; }
    .summary-box { width: 280px; }
    .summary-row {
      display: flex;
      justify-content: space-between;
      padding: 5px 10px;
    }
    .summary-row.final {
      background: #111827;
      color: #ffffff;
      font-weight: 700;
      font-size: 15px;
      margin-top: 6px;
    }
    .summary-words {
      text-align: right;
      padding: 6px 10px;
      font-size: 11px;
      color: #6b7280;
      font-style: italic;
    }
    .extras { display: flex; gap: 24px; margin-top: 24px; font-size: 12px; }
    .extras .col { flex: 1; }
    .signature { margin-top: 28px; text-align: right; }
    .signature img { max-height: 60px; }
    .signature-typed { font-size: 26px; }
  </style>
</head>
<body>
  <div class="band">
    <div>
      <h1>Invoice</h1>
      <div class="number">{{.Invoice.Number}}</div>
    </div>
    {{if .Invoice.LogoURL}}<img src="{{.Invoice.LogoURL}}" alt="{{.Sender.Name}}">{{else}}<div class="company">{{.Sender.Name}}</div>{{end}}
  </div>

  <div class="content">
    <div class="parties">
      <div class="col">
        <div class="label">From</div>
        <div class="value">
          <strong>{{.Sender.Name}}</strong><br>
          {{if .Sender.Address}}{{.Sender.Address}}<br>{{end}}
          {{if .Sender.City}}{{.Sender.City}} {{.Sender.ZipCode}}<br>{{end}}
          {{.Sender.Email}}{{if .Sender.Phone}}<br>{{.Sender.Phone}}{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Receiver.Name}}</strong><br>
          {{if .Receiver.Address}}{{.Receiver.Address}}<br>{{end}}
          {{if .Receiver.City}}{{.Receiver.City}} {{.Receiver.ZipCode}}<br>{{end}}
          {{.Receiver.Email}}
        </div>
      </div>
      <div class="col dates">
        <div class="label">Issued</div>
        <div class="value">{{formatDate .Invoice.InvoiceDate}}</div>
        <div class="label">Due</div>
        <div class="value">{{formatDate .Invoice.DueDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 48%;">Item</th>
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
          <td class="td-right">{{formatMoney .Total $.Invoice.Currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="summary">
      <div class="summary-box">
        <div class="summary-row">
          <span>Subtotal</span>
          <span>{{formatMoney .Totals.SubTotal .Invoice.Currency}}</span>
        </div>
        {{range .Totals.Charges}}
        <div class="summary-row">
          <span>{{.Label}}</span>
          <span>{{if .Negative}}-{{end}}{{formatMoney .Amount $.Invoice.Currency}}</span>
        </div>
        {{end}}
        <div class="summary-row final">
          <span>Total</span>
          <span>{{formatMoney .Totals.Total .Invoice.Currency}}</span>
        </div>
        <div class="summary-words">{{.Totals.TotalInWords}}</div>
      </div>
    </div>

    <div class="extras">
      {{if .Invoice.AdditionalNotes}}
      <div class="col">
        <div class="label">Notes</div>
        <div class="value">{{.Invoice.AdditionalNotes}}</div>
      </div>
      {{end}}
      {{if .Invoice.PaymentTerms}}
      <div class="col">
        <div class="label">Terms</div>
        <div class="value">{{.Invoice.PaymentTerms}}</div>
      </div>
      {{end}}
      {{if .Invoice.Payment.AccountNumber}}
      <div class="col">
        <div class="label">Bank details</div>
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
