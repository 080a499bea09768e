package offers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var ErrInvalidStatus = errors.New("invalid status transition")

// TemplateLookup resolves a stored text template body. Satisfied by the
// doctemplates service.
type TemplateLookup interface {
	Body(ctx context.Context, id int64) (string, error)
}

// RenderQueue enqueues background PDF pre-rendering after offer mutations.
// Satisfied by the jobs client.
type RenderQueue interface {
	EnqueueRenderOfferPDF(ctx context.Context, offerID int64) error
}

type Service struct {
	repo      Repository
	templates TemplateLookup
	queue     RenderQueue
	logger    *slog.Logger
}

func NewService(repo Repository, templates TemplateLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, templates: templates, logger: logger}
}

// WithRenderQueue enables background PDF pre-rendering on mutations.
func (s *Service) WithRenderQueue(queue RenderQueue) *Service {
	s.queue = queue
	return s
}

// prewarm schedules a background PDF render so the next export hits the
// cache. Enqueue failures are logged, never surfaced to the caller.
func (s *Service) prewarm(ctx context.Context, offerID int64) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueRenderOfferPDF(ctx, offerID); err != nil && s.logger != nil {
		s.logger.Warn("enqueue pdf prewarm", slog.Int64("offer_id", offerID), slog.Any("error", err))
	}
}

func (s *Service) CreateOffer(ctx context.Context, req CreateOfferRequest) (*Offer, error) {
	intro := req.Intro
	outro := req.Outro
	if s.templates != nil {
		if req.IntroTemplateID != nil && intro == "" {
			body, err := s.templates.Body(ctx, *req.IntroTemplateID)
			if err != nil {
				return nil, fmt.Errorf("resolve intro template: %w", err)
			}
			intro = body
		}
		if req.OutroTemplateID != nil && outro == "" {
			body, err := s.templates.Body(ctx, *req.OutroTemplateID)
			if err != nil {
				return nil, fmt.Errorf("resolve outro template: %w", err)
			}
			outro = body
		}
	}

	offer := Offer{
		CustomerID:      req.CustomerID,
		ProjectID:       req.ProjectID,
		Title:           req.Title,
		OfferDate:       req.OfferDate,
		OfferNumber:     req.OfferNumber,
		Status:          OfferStatusDraft,
		Intro:           intro,
		Outro:           outro,
		PaymentDueDays:  req.PaymentDueDays,
		DiscountPercent: req.DiscountPercent,
		DiscountDays:    req.DiscountDays,
		TaxRate:         req.TaxRate,
		ShowVATForLabor: req.ShowVATForLabor,
	}

	id, err := s.repo.CreateOffer(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return s.repo.GetOffer(ctx, id)
}

func (s *Service) GetOffer(ctx context.Context, id int64) (*Offer, error) {
	return s.repo.GetOfferTree(ctx, id)
}

func (s *Service) ListOffers(ctx context.Context, req ListOffersRequest) ([]Offer, int, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	return s.repo.ListOffers(ctx, req)
}

func (s *Service) UpdateOffer(ctx context.Context, id int64, req UpdateOfferRequest) (*Offer, error) {
	existing, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if existing.Status != OfferStatusDraft {
		return nil, fmt.Errorf("%w: only draft offers can be edited", ErrInvalidStatus)
	}

	updates := make(map[string]interface{})
	if req.CustomerID != nil {
		updates["customer_id"] = *req.CustomerID
	}
	if req.ProjectID != nil {
		updates["project_id"] = *req.ProjectID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.OfferDate != nil {
		updates["offer_date"] = *req.OfferDate
	}
	if req.OfferNumber != nil {
		updates["offer_number"] = *req.OfferNumber
	}
	if req.Intro != nil {
		updates["intro"] = *req.Intro
	}
	if req.Outro != nil {
		updates["outro"] = *req.Outro
	}
	if req.PaymentDueDays != nil {
		updates["payment_due_days"] = *req.PaymentDueDays
	}
	if req.DiscountPercent != nil {
		updates["discount_percent"] = *req.DiscountPercent
	}
	if req.DiscountDays != nil {
		updates["discount_days"] = *req.DiscountDays
	}
	if req.ShowVATForLabor != nil {
		updates["show_vat_for_labor"] = *req.ShowVATForLabor
	}

	taxChanged := req.TaxRate != nil
	if taxChanged {
		updates["tax_rate"] = *req.TaxRate
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if len(updates) > 0 {
			if err := repo.UpdateOffer(ctx, id, updates); err != nil {
				return err
			}
		}
		if taxChanged {
			return s.refreshOfferTotals(ctx, repo, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	s.prewarm(ctx, id)
	return s.repo.GetOffer(ctx, id)
}

// statusTransitions enumerates the allowed offer lifecycle moves. Cancellation
// is reachable from every non-terminal state.
var statusTransitions = map[OfferStatus][]OfferStatus{
	OfferStatusDraft:     {OfferStatusSent, OfferStatusCancelled},
	OfferStatusSent:      {OfferStatusAccepted, OfferStatusRejected, OfferStatusCancelled},
	OfferStatusAccepted:  {},
	OfferStatusRejected:  {},
	OfferStatusCancelled: {},
}

func (s *Service) UpdateOfferStatus(ctx context.Context, id int64, status OfferStatus) (*Offer, error) {
	existing, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}

	allowed := false
	for _, next := range statusTransitions[existing.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, existing.Status, status)
	}

	if err := s.repo.UpdateOfferStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update offer status: %w", err)
	}
	return s.repo.GetOffer(ctx, id)
}

func (s *Service) DeleteOffer(ctx context.Context, id int64) error {
	return s.repo.DeleteOffer(ctx, id)
}

func (s *Service) CreateGroup(ctx context.Context, offerID int64, req CreateGroupRequest) (*OfferGroup, error) {
	if _, err := s.repo.GetOffer(ctx, offerID); err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}

	var groupID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		maxIndex, err := repo.MaxGroupIndex(ctx, offerID)
		if err != nil {
			return fmt.Errorf("max group index: %w", err)
		}
		id, err := repo.CreateGroup(ctx, OfferGroup{
			OfferID: offerID,
			Index:   NextGroupIndex(maxIndex),
			Title:   req.Title,
		})
		if err != nil {
			return err
		}
		groupID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return s.repo.GetGroup(ctx, groupID)
}

func (s *Service) GetGroup(ctx context.Context, id int64) (*OfferGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) UpdateGroup(ctx context.Context, id int64, req UpdateGroupRequest) (*OfferGroup, error) {
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateGroup(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update group: %w", err)
		}
	}
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	group, err := s.repo.GetGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeleteGroup(ctx, id); err != nil {
			return err
		}
		return s.refreshOfferTotals(ctx, repo, group.OfferID)
	})
	if err != nil {
		return err
	}
	s.prewarm(ctx, group.OfferID)
	return nil
}

func (s *Service) CreateItem(ctx context.Context, groupID int64, req CreateItemRequest) (*OfferItem, error) {
	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	pricing, err := ComputeItemPricing(ItemPricing{}, PricePatch{
		Qty:           &req.Qty,
		PurchasePrice: &req.PurchasePrice,
		Price:         priceInput(req.MarkupPercent, req.MarginAmount),
	})
	if err != nil {
		return nil, err
	}

	var itemID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		positions, err := repo.ItemPositions(ctx, groupID)
		if err != nil {
			return fmt.Errorf("item positions: %w", err)
		}

		item := OfferItem{
			GroupID:       groupID,
			Type:          req.Type,
			Name:          req.Name,
			Description:   req.Description,
			Unit:          req.Unit,
			Qty:           pricing.Qty,
			PurchasePrice: pricing.PurchasePrice,
			MarkupPercent: pricing.MarkupPercent,
			MarginAmount:  pricing.MarginAmount,
			UnitPrice:     pricing.UnitPrice,
			LineTotal:     pricing.LineTotal,
			PositionIndex: NextItemPosition(group.Index, positions),
		}
		id, err := repo.CreateItem(ctx, item)
		if err != nil {
			return err
		}
		itemID = id
		return s.refreshGroupTotals(ctx, repo, group)
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.prewarm(ctx, group.OfferID)
	return s.repo.GetItem(ctx, itemID)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*OfferItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, req UpdateItemRequest) (*OfferItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	group, err := s.repo.GetGroup(ctx, item.GroupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	pricing, err := ComputeItemPricing(ItemPricing{
		Qty:           item.Qty,
		PurchasePrice: item.PurchasePrice,
		MarkupPercent: item.MarkupPercent,
		MarginAmount:  item.MarginAmount,
	}, PricePatch{
		Qty:           req.Qty,
		PurchasePrice: req.PurchasePrice,
		Price:         priceInput(req.MarkupPercent, req.MarginAmount),
	})
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"qty":            pricing.Qty,
		"purchase_price": pricing.PurchasePrice,
		"markup_percent": pricing.MarkupPercent,
		"margin_amount":  pricing.MarginAmount,
		"unit_price":     pricing.UnitPrice,
		"line_total":     pricing.LineTotal,
	}
	if req.Type != nil {
		updates["item_type"] = *req.Type
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.UpdateItem(ctx, id, updates); err != nil {
			return err
		}
		return s.refreshGroupTotals(ctx, repo, group)
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.prewarm(ctx, group.OfferID)
	return s.repo.GetItem(ctx, id)
}

// DeleteItem removes the item and rebuilds the owning group's aggregates.
// Sibling position indices are left untouched.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	group, err := s.repo.GetGroup(ctx, item.GroupID)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeleteItem(ctx, id); err != nil {
			return err
		}
		return s.refreshGroupTotals(ctx, repo, group)
	})
	if err != nil {
		return err
	}
	s.prewarm(ctx, group.OfferID)
	return nil
}

// refreshGroupTotals re-reads the group's full item set, folds it into a fresh
// aggregate record and persists it, then rolls the offer-level totals forward.
// Callers run it inside the same transaction as the item write so the
// aggregate can never reflect a stale snapshot.
func (s *Service) refreshGroupTotals(ctx context.Context, repo Repository, group *OfferGroup) error {
	items, err := repo.ListGroupItems(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("list group items: %w", err)
	}
	totals := RecomputeGroupTotals(items)
	if err := repo.UpdateGroupTotals(ctx, group.ID, totals); err != nil {
		return fmt.Errorf("update group totals: %w", err)
	}
	return s.refreshOfferTotals(ctx, repo, group.OfferID)
}

// refreshOfferTotals recomputes the cached document-level totals from the live
// sum of group nets and the offer's tax rate.
func (s *Service) refreshOfferTotals(ctx context.Context, repo Repository, offerID int64) error {
	offer, err := repo.GetOffer(ctx, offerID)
	if err != nil {
		return fmt.Errorf("get offer: %w", err)
	}
	net, err := repo.SumGroupNet(ctx, offerID)
	if err != nil {
		return fmt.Errorf("sum group net: %w", err)
	}
	tax := net * (offer.TaxRate / 100)
	return repo.UpdateOfferTotals(ctx, offerID, net, tax, net+tax)
}
