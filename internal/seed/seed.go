// Package seed bootstraps a demo invoice on first start so a fresh install
// has something to open in the editor. It never touches a non-empty table.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
)

const demoUserID = snowflake.ID(1)

// EnsureDemoInvoice inserts one example invoice when the invoices table is
// empty. Meant for development setups only.
func EnsureDemoInvoice(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&invoicedomain.Invoice{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		inv := invoicedomain.Invoice{
			ID:            node.Generate(),
			UserID:        demoUserID,
			InvoiceNumber: "INV-DEMO-001",
			Status:        invoicedomain.InvoiceStatusDraft,
			Template:      1,
			Sender: invoicedomain.Party{
				Name:    "Demo Studio",
				Email:   "hello@demo.studio",
				Address: "1 Example Street",
				City:    "Springfield",
				Country: "US",
			},
			Receiver: invoicedomain.Party{
				Name:  "Sample Client",
				Email: "billing@sample.client",
			},
			Details: invoicedomain.Details{
				InvoiceDate: now,
				DueDate:     now.AddDate(0, 0, 30),
				Currency:    "USD",
				Items: []invoicedomain.LineItem{
					{Name: "Design work", Description: "Landing page", Quantity: 10, UnitPrice: 95},
					{Name: "Hosting", Quantity: 1, UnitPrice: 25},
				},
				Tax: invoicedomain.Modifier{
					Enabled:   true,
					Value:     10,
					ValueType: invoicedomain.ValuePercentage,
				},
				AdditionalNotes: "Thank you for your business.",
				PaymentTerms:    "Net 30",
			},
		}
		inv = inv.Recalculate()

		return tx.Create(&inv).Error
	})
}
