package render

// Template 3: monochrome, hairline rules, generous whitespace.
const minimalTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    @page { size: A4; margin: 16mm; }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 0;
      font-family: Georgia, "Times New Roman", serif;
      color: #1f1f1f;
      background: #ffffff;
      font-size: 13px;
      line-height: 1.5;
    }
    .page { padding: 8px 4px; }
    .head {
      display: flex;
      justify-content: space-between;
      align-items: baseline;
      border-bottom: 1px solid #1f1f1f;
      padding-bottom: 16px;
      margin-bottom: 28px;
    }
    .head h1 {
      margin: 0;
      font-size: 30px;
      font-weight: 400;
      letter-spacing: 4px;
      text-transform: uppercase;
    }
    .head .number { font-size: 13px; color: #555555; }
    .head img { max-height: 40px; }
    .label {
      font-size: 10px;
      letter-spacing: 1.5px;
      text-transform: uppercase;
      color: #888888;
      margin-bottom: 6px;
    }
    .meta {
      display: flex;
      gap: 36px;
      margin-bottom: 32px;
    }
    .meta .col { flex: 1; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th {
      text-align: left;
      font-weight: 400;
      font-size: 10px;
      letter-spacing: 1.5px;
      text-transform: uppercase;
      color: #888888;
      border-bottom: 1px solid #1f1f1f;
      padding: 0 6px 8px 6px;
    }
    td { padding: 10px 6px; border-bottom: 1px solid #e5e5e5; vertical-align: top; }
    .td-right { text-align: right; }
    .item-sub { font-size: 11px; color: #777777; }
    .summary { margin-left: auto; width: 260px; }
    .summary-row {
      display: flex;
      justify-content: space-between;
      padding: 4px 6px;
    }
    .summary-row.final {
      border-top: 1px solid #1f1f1f;
      margin-top: 8px;
      padding-top: 10px;
      font-size: 16px;
    }
    .summary-words {
      text-align: right;
      padding: 4px 6px;
      font-size: 11px;
      color: #777777;
      font-style: italic;
    }
    .extras { margin-top: 36px; font-size: 12px; color: #444444; }
    .extras .block { margin-bottom: 16px; }
    .signature { margin-top: 40px; text-align: right; }
    .signature img { max-height: 56px; }
    .signature-typed { font-size: 24px; }
    .signature-caption {
      font-size: 10px;
      letter-spacing: 1.5px;
      text-transform: uppercase;
      color: #888888;
      margin-top: 6px;
    }
  </style>
</head>
<body>
  <div class="page">
    <div class="head">
      <div>
        <h1>Invoice</h1>
        <div class="number">{{.Invoice.Number}}</div>
      </div>
      {{if .Invoice.LogoURL}}<img src="{{.Invoice.LogoURL}}" alt="{{.Sender.Name}}">{{end}}
    </div>

    <div class="meta">
      <div class="col">
        <div class="label">From</div>
        <div>
          {{.Sender.Name}}<br>
          {{if .Sender.Address}}{{.Sender.Address}}<br>{{end}}
          {{if .Sender.City}}{{.Sender.City}} {{.Sender.ZipCode}}<br>{{end}}
          {{.Sender.Email}}{{if .Sender.Phone}}<br>{{.Sender.Phone}}{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Bill to</div>
        <div>
          {{.Receiver.Name}}<br>
          {{if .Receiver.Address}}{{.Receiver.Address}}<br>{{end}}
          {{if .Receiver.City}}{{.Receiver.City}} {{.Receiver.ZipCode}}<br>{{end}}
          {{.Receiver.Email}}
        </div>
      </div>
      <div class="col">
        <div class="label">Issued</div>
        <div>{{formatDate .Invoice.InvoiceDate}}</div>
        <div class="label" style="margin-top: 12px;">Due</div>
        <div>{{formatDate .Invoice.DueDate}}</div>
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
            {{.Name}}
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

    <div class="extras">
      {{if .Invoice.AdditionalNotes}}
      <div class="block">
        <div class="label">Notes</div>
        <div>{{.Invoice.AdditionalNotes}}</div>
      </div>
      {{end}}
      {{if .Invoice.PaymentTerms}}
      <div class="block">
        <div class="label">Terms</div>
        <div>{{.Invoice.PaymentTerms}}</div>
      </div>
      {{end}}
      {{if .Invoice.Payment.AccountNumber}}
      <div class="block">
        <div class="label">Payment details</div>
        <div>
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
      <div class="signature-caption">Authorized signature</div>
    </div>
    {{end}}
  </div>
</body>
</html>
`
