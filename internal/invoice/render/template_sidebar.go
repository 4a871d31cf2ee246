package render

// Template 4: left sidebar carrying sender identity and payment details.
const sidebarTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    @page { size: A4; margin: 0; }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 0;
      font-family: "Segoe UI", Tahoma, Arial, sans-serif;
      color: #1e293b;
      background: #ffffff;
      font-size: 13px;
    }
    .layout { display: flex; min-height: 100vh; }
    .sidebar {
      flex: 0 0 220px;
      background: #0f172a;
      color: #e2e8f0;
      padding: 36px 24px;
    }
    .sidebar img { max-width: 140px; margin-bottom: 20px; }
    .sidebar .company { font-size: 17px; font-weight: 700; color: #ffffff; margin-bottom: 4px; }
    .sidebar .block { margin-bottom: 26px; font-size: 12px; line-height: 1.55; }
    .sidebar .label {
      font-size: 10px;
      text-transform: uppercase;
      letter-spacing: 0.8px;
      color: #64748b;
      margin-bottom: 6px;
      font-weight: 700;
    }
    .main { flex: 1; padding: 36px 32px; }
    .head { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 26px; }
    .head h1 { margin: 0; font-size: 26px; font-weight: 700; color: #0f172a; }
    .head .number { color: #64748b; font-size: 13px; }
    .label {
      font-size: 10px;
      text-transform: uppercase;
      letter-spacing: 0.8px;
      color: #64748b;
      margin-bottom: 5px;
      font-weight: 700;
    }
    .billing { display: flex; gap: 28px; margin-bottom: 24px; }
    .billing .col { flex: 1; line-height: 1.5; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 18px; }
    th {
      text-align: left;
      font-size: 10px;
      text-transform: uppercase;
      letter-spacing: 0.8px;
      color: #64748b;
      border-bottom: 2px solid #0f172a;
      padding: 7px 8px;
    }
    td { padding: 9px 8px; border-bottom: 1px solid #e2e8f0; vertical-align: top; }
    .td-right { text-align: right; }
    .item-title { font-weight: 600; }
    .item-sub { font-size: 11px; color: #64748b; }
    .summary { margin-left: auto; width: 260px; }
    .summary-row { display: flex; justify-content: space-between; padding: 4px 8px; }
    .summary-row.final {
      border-top: 2px solid #0f172a;
      margin-top: 6px;
      padding-top: 9px;
      font-weight: 700;
      font-size: 15px;
      color: #0f172a;
    }
    .summary-words {
      text-align: right;
      padding: 4px 8px;
      font-size: 11px;
      color: #64748b;
      font-style: italic;
    }
    .notes { margin-top: 26px; font-size: 12px; color: #334155; }
    .notes .block { margin-bottom: 14px; }
    .signature { margin-top: 32px; text-align: right; }
    .signature img { max-height: 58px; }
    .signature-typed { font-size: 25px; }
  </style>
</head>
<body>
  <div class="layout">
    <div class="sidebar">
      {{if .Invoice.LogoURL}}<img src="{{.Invoice.LogoURL}}" alt="{{.Sender.Name}}">{{end}}
      <div class="block">
        <div class="company">{{.Sender.Name}}</div>
        {{if .Sender.Address}}{{.Sender.Address}}<br>{{end}}
        {{if .Sender.City}}{{.Sender.City}} {{.Sender.ZipCode}}<br>{{end}}
        {{.Sender.Email}}{{if .Sender.Phone}}<br>{{.Sender.Phone}}{{end}}
      </div>
      <div class="block">
        <div class="label">Issued</div>
        {{formatDate .Invoice.InvoiceDate}}
      </div>
      <div class="block">
        <div class="label">Due</div>
        {{formatDate .Invoice.DueDate}}
      </div>
      {{if .Invoice.Payment.AccountNumber}}
      <div class="block">
        <div class="label">Payment details</div>
        {{if .Invoice.Payment.BankName}}{{.Invoice.Payment.BankName}}<br>{{end}}
        {{if .Invoice.Payment.AccountName}}{{.Invoice.Payment.AccountName}}<br>{{end}}
        {{.Invoice.Payment.AccountNumber}}
      </div>
      {{end}}
    </div>

    <div class="main">
      <div class="head">
        <h1>Invoice</h1>
        <div class="number">{{.Invoice.Number}}</div>
      </div>

      <div class="billing">
        <div class="col">
          <div class="label">Bill to</div>
          <strong>{{.Receiver.Name}}</strong><br>
          {{if .Receiver.Address}}{{.Receiver.Address}}<br>{{end}}
          {{if .Receiver.City}}{{.Receiver.City}} {{.Receiver.ZipCode}}<br>{{end}}
          {{.Receiver.Email}}
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

      <div class="notes">
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
  </div>
</body>
</html>
`
