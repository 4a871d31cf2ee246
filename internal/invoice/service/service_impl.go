package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/format"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"github.com/smallbiznis/invoicely/internal/usercontext"
	"github.com/smallbiznis/invoicely/pkg/db"
	"github.com/smallbiznis/invoicely/pkg/db/option"
	"github.com/smallbiznis/invoicely/pkg/db/pagination"
	"github.com/smallbiznis/invoicely/pkg/repository"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   config.Config
	PDF   pdf.Provider
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	pdf   pdf.Provider

	numberTemplate string
	invoicerepo    repository.Repository[invoicedomain.Invoice]
}

func NewService(p ServiceParam) invoicedomain.Service {
	numberTemplate := strings.TrimSpace(p.Cfg.NumberTemplate)
	if numberTemplate == "" {
		numberTemplate = format.DefaultNumberTemplate
	}
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,
		pdf:   p.PDF,

		numberTemplate: numberTemplate,
		invoicerepo:    repository.ProvideStore[invoicedomain.Invoice](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (invoicedomain.Invoice, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	now := s.clock.Now()
	invoiceDate := now
	if req.InvoiceDate != nil && !req.InvoiceDate.IsZero() {
		invoiceDate = req.InvoiceDate.UTC()
	}
	dueDate := invoiceDate.AddDate(0, 0, 30)
	if req.DueDate != nil && !req.DueDate.IsZero() {
		dueDate = req.DueDate.UTC()
	}

	template := req.Template
	if template < 1 || template > render.TemplateCount {
		template = 1
	}

	inv := invoicedomain.Invoice{
		ID:       s.genID.Generate(),
		UserID:   userID,
		Status:   invoicedomain.InvoiceStatusDraft,
		Template: template,
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Details: invoicedomain.Details{
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			Currency:    req.Currency,
			Items:       []invoicedomain.LineItem{{Quantity: 1}},
			Discount:    invoicedomain.Modifier{ValueType: invoicedomain.ValuePercentage},
			Tax:         invoicedomain.Modifier{ValueType: invoicedomain.ValuePercentage},
			Shipping:    invoicedomain.Modifier{ValueType: invoicedomain.ValueAmount},
		},
	}
	inv = inv.Recalculate()

	// Each duplicate collision bumps the per-day sequence and retries, so
	// concurrent creates settle on distinct numbers.
	seq, err := s.nextNumberSequence(ctx, userID, invoiceDate)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	for attempt := 0; attempt < 5; attempt++ {
		number, err := format.Number(s.numberTemplate, invoiceDate, seq)
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
		inv.InvoiceNumber = number

		err = s.invoicerepo.Create(ctx, &inv)
		if err == nil {
			s.log.Info("invoice created",
				zap.Int64("invoice_id", int64(inv.ID)),
				zap.String("invoice_number", inv.InvoiceNumber),
			)
			return inv, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return invoicedomain.Invoice{}, err
		}
		seq++
	}
	return invoicedomain.Invoice{}, invoicedomain.ErrDuplicateNumber
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) (invoicedomain.ListResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return invoicedomain.ListResponse{}, err
	}

	filter := &invoicedomain.Invoice{UserID: userID}
	if req.Status != nil {
		filter.Status = *req.Status
	}
	if req.Number != nil {
		filter.InvoiceNumber = strings.TrimSpace(*req.Number)
	}

	limit := req.Limit()
	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{}),
		option.WithLimit(limit + 1),
	}
	if req.CreatedFrom != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "created_at",
			Operator: option.GTE,
			Value:    *req.CreatedFrom,
		}))
	}
	if req.CreatedTo != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "created_at",
			Operator: option.LTE,
			Value:    *req.CreatedTo,
		}))
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return invoicedomain.ListResponse{}, invoicedomain.ErrInvalidPageToken
		}
		if cursor.CreatedAt != "" {
			before, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
			if err != nil {
				return invoicedomain.ListResponse{}, invoicedomain.ErrInvalidPageToken
			}
			options = append(options, option.ApplyOperator(option.Condition{
				Field:    "created_at",
				Operator: option.LT,
				Value:    before,
			}))
		}
	}

	items, err := s.invoicerepo.Find(ctx, filter, options...)
	if err != nil {
		return invoicedomain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, limit, func(inv *invoicedomain.Invoice) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	now := s.clock.Now()
	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		inv := *item
		inv.Status = inv.EffectiveStatus(now)
		invoices = append(invoices, inv)
	}

	return invoicedomain.ListResponse{PageInfo: *pageInfo, Invoices: invoices}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	inv.Status = inv.EffectiveStatus(s.clock.Now())
	return inv, nil
}

func (s *Service) Update(ctx context.Context, id string, req invoicedomain.UpdateRequest) (invoicedomain.Invoice, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	if req.Sender != nil {
		inv.Sender = *req.Sender
	}
	if req.Receiver != nil {
		inv.Receiver = *req.Receiver
	}
	if req.Details != nil {
		inv.Details = *req.Details
	}
	if req.Template != nil {
		template := *req.Template
		if template < 1 || template > render.TemplateCount {
			template = 1
		}
		inv.Template = template
	}

	inv = inv.Recalculate()
	return s.save(ctx, inv)
}

// SetStatus advances the lifecycle. Draft invoices must pass content
// validation before they can be sent; overdue is derived, never stored.
func (s *Service) SetStatus(ctx context.Context, id string, status invoicedomain.InvoiceStatus) (invoicedomain.Invoice, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if inv.Status == status {
		return inv, nil
	}

	switch {
	case inv.Status == invoicedomain.InvoiceStatusDraft && status == invoicedomain.InvoiceStatusSent:
		if err := inv.ValidateForSave(); err != nil {
			return invoicedomain.Invoice{}, err
		}
	case inv.Status == invoicedomain.InvoiceStatusSent && status == invoicedomain.InvoiceStatusPaid:
	case inv.Status == invoicedomain.InvoiceStatusSent && status == invoicedomain.InvoiceStatusDraft:
	default:
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
	}

	inv.Status = status
	return s.save(ctx, inv)
}

func (s *Service) AddItem(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return s.save(ctx, inv.AddItem())
}

func (s *Service) RemoveItem(ctx context.Context, id string, index int) (invoicedomain.Invoice, error) {
	return s.mutate(ctx, id, func(inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
		return inv.RemoveItem(index)
	})
}

func (s *Service) MoveItem(ctx context.Context, id string, from, to int) (invoicedomain.Invoice, error) {
	return s.mutate(ctx, id, func(inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
		return inv.MoveItem(from, to)
	})
}

func (s *Service) DuplicateItem(ctx context.Context, id string, index int) (invoicedomain.Invoice, error) {
	return s.mutate(ctx, id, func(inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
		return inv.DuplicateItem(index)
	})
}

func (s *Service) UpdateItem(ctx context.Context, id string, index int, field string, value any) (invoicedomain.Invoice, error) {
	parsed, err := invoicedomain.ParseItemField(field)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return s.mutate(ctx, id, func(inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
		return inv.UpdateItem(index, parsed, value)
	})
}

func (s *Service) UpdateModifier(ctx context.Context, id string, kind string, patch invoicedomain.ModifierPatch) (invoicedomain.Invoice, error) {
	parsed, err := invoicedomain.ParseModifierKind(kind)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return s.mutate(ctx, id, func(inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
		return inv.UpdateModifier(parsed, patch)
	})
}

func (s *Service) mutate(ctx context.Context, id string, op func(invoicedomain.Invoice) (invoicedomain.Invoice, error)) (invoicedomain.Invoice, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	next, err := op(inv)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return s.save(ctx, next)
}

func (s *Service) save(ctx context.Context, inv invoicedomain.Invoice) (invoicedomain.Invoice, error) {
	inv.UpdatedAt = s.clock.Now()
	if err := s.invoicerepo.Save(ctx, &inv); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return invoicedomain.Invoice{}, invoicedomain.ErrDuplicateNumber
		}
		return invoicedomain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) load(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}

	item, err := s.invoicerepo.FindOne(ctx, &invoicedomain.Invoice{ID: invoiceID, UserID: userID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if item == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}
	return *item, nil
}

func (s *Service) userIDFromContext(ctx context.Context) (snowflake.ID, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return 0, invoicedomain.ErrInvalidUser
	}
	return userID, nil
}

// nextNumberSequence counts the user's invoices numbered for the same dated
// day, so a backdated invoice date starts its own contiguous run instead of
// picking up today's count. The unique index on (user_id, invoice_number) is
// the real guarantee; this only picks a good starting point.
func (s *Service) nextNumberSequence(ctx context.Context, userID snowflake.ID, issuedAt time.Time) (int64, error) {
	pattern, err := format.NumberPattern(s.numberTemplate, issuedAt)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where(`user_id = ? AND invoice_number LIKE ? ESCAPE ?`, userID, pattern, `\`).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
