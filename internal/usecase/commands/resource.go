package commands

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/pkg/clock"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../testutil/mock/commands/resource.go -package=commandsmock

type ResourceInput struct {
	Name string
	Kind string
	Unit string
}

func (in ResourceInput) details() (resource.Details, error) {
	kind, err := resource.NewKind(in.Kind)
	if err != nil {
		return resource.Details{}, err
	}
	return resource.Details{Name: in.Name, Kind: kind, Unit: in.Unit}, nil
}

type CreateResourceInput struct {
	ResourceInput
	// OpeningQuantity is booked as an "opening balance" movement so the ledger stays reconcilable.
	OpeningQuantity int64
}

type RecordMovementInput struct {
	Quantity int64
	Reason   string
}

type MovementEvent struct {
	MovementID     uuid.UUID `json:"movement_id"`
	ResourceID     uuid.UUID `json:"resource_id"`
	ResourceName   string    `json:"resource_name"`
	Quantity       int64     `json:"quantity"`
	Reason         string    `json:"reason"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type RecordMovementResult struct {
	MovementID    uuid.UUID
	TotalQuantity int64
}

type ResourceCommands interface {
	Create(ctx context.Context, in CreateResourceInput) (uuid.UUID, error)
	// UpdateDetails changes name, kind and unit; the total only moves through RecordMovement.
	UpdateDetails(ctx context.Context, id uuid.UUID, in ResourceInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecordMovement(ctx context.Context, resourceID uuid.UUID, in RecordMovementInput) (*RecordMovementResult, error)
}

type resourceCommandsImpl struct {
	uow    shared.UnitOfWork
	ledger *stock.Ledger
	clock  clock.Clock
}

func NewResourceCommands(uow shared.UnitOfWork, ledger *stock.Ledger, clk clock.Clock) ResourceCommands {
	return &resourceCommandsImpl{uow: uow, ledger: ledger, clock: clk}
}

func (r *resourceCommandsImpl) Create(ctx context.Context, in CreateResourceInput) (uuid.UUID, error) {
	details, err := in.details()
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	now := r.clock.Now()
	res, err := resource.NewResource(details, now)
	if err != nil {
		return uuid.Nil, errs.Invalid(err)
	}
	opening, err := r.ledger.Open(res, in.OpeningQuantity, now)
	if err != nil {
		return uuid.Nil, markLedgerErr(err)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if createErr := tx.Resources().Create(ctx, res); createErr != nil {
			return shared.Translate(createErr, shared.ErrResourceNotFound)
		}
		if opening == nil {
			return nil
		}
		if mvErr := tx.StockMovements().Create(ctx, opening); mvErr != nil {
			return shared.Translate(mvErr, shared.ErrResourceNotFound)
		}
		return enqueue(ctx, tx, shared.JobKindStockMovementRecorded, shared.TopicStock, newMovementEvent(opening, res), now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return res.ID(), nil
}

func (r *resourceCommandsImpl) UpdateDetails(ctx context.Context, id uuid.UUID, in ResourceInput) error {
	details, err := in.details()
	if err != nil {
		return errs.Invalid(err)
	}
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, findErr := tx.Resources().FindByIDForUpdate(ctx, id)
		if findErr != nil {
			return findErr
		}
		if updateErr := res.UpdateDetails(details, r.clock.Now()); updateErr != nil {
			return errs.Invalid(updateErr)
		}
		return tx.Resources().UpdateDetails(ctx, res)
	})
	return shared.Translate(err, shared.ErrResourceNotFound)
}

func (r *resourceCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Delete(ctx, id)
	})
	return shared.Translate(err, shared.ErrResourceNotFound)
}

// RecordMovement holds the resource row lock across read, apply and both writes, so concurrent
// movements on one resource serialize and each sees the previous total.
func (r *resourceCommandsImpl) RecordMovement(ctx context.Context, resourceID uuid.UUID, in RecordMovementInput) (*RecordMovementResult, error) {
	var result RecordMovementResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, findErr := tx.Resources().FindByIDForUpdate(ctx, resourceID)
		if findErr != nil {
			return shared.Translate(findErr, shared.ErrResourceNotFound)
		}

		now := r.clock.Now()
		mv, applyErr := r.ledger.Apply(res, in.Quantity, in.Reason, now)
		if applyErr != nil {
			return markLedgerErr(applyErr)
		}

		if mvErr := tx.StockMovements().Create(ctx, mv); mvErr != nil {
			return shared.Translate(mvErr, shared.ErrResourceNotFound)
		}
		if totalErr := tx.Resources().UpdateTotal(ctx, res); totalErr != nil {
			return shared.Translate(totalErr, shared.ErrResourceNotFound)
		}

		result = RecordMovementResult{MovementID: mv.ID(), TotalQuantity: res.TotalQuantity()}
		return enqueue(ctx, tx, shared.JobKindStockMovementRecorded, shared.TopicStock, newMovementEvent(mv, res), now)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// markLedgerErr leaves ErrInsufficientStock unmarked; it is a business rejection, not bad input.
func markLedgerErr(err error) error {
	if errs.Is(err, stock.ErrInsufficientStock) {
		return err
	}
	return errs.Invalid(err)
}

func newMovementEvent(mv *stock.Movement, res *resource.Resource) MovementEvent {
	return MovementEvent{
		MovementID:     mv.ID(),
		ResourceID:     res.ID(),
		ResourceName:   res.Name(),
		Quantity:       mv.Quantity(),
		Reason:         mv.Reason(),
		QuantityBefore: mv.QuantityBefore(),
		QuantityAfter:  mv.QuantityAfter(),
		RecordedAt:     mv.RecordedAt(),
	}
}
