package services

import (
	"context"
	"fmt"
	"io"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

var orderColumns = []any{
	"Order ID", "User ID", "Name", "Mobile", "Email", "Address", "Pincode",
	"Title", "Size", "Quantity", "Price", "Discount", "Payment Method", "Order Date",
}

type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(r repository.OrderRepository) *OrderService {
	return &OrderService{repo: r}
}

// ListOrders returns every order, newest first, or only the account's orders
// when accountID is set.
func (s *OrderService) ListOrders(ctx context.Context, accountID string) ([]domain.Order, error) {
	if accountID != "" {
		return s.repo.FindByAccount(ctx, accountID)
	}
	return s.repo.FindAll(ctx)
}

// ExportOrders writes every order as an xlsx workbook with one row per order.
func (s *OrderService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := append([]any{}, orderColumns...)
	if err := f.SetSheetRow(ordersSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(ordersSheet, 1, 1, bold)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			o.ID, o.AccountID, o.Name, o.Mobile, o.Email, o.Address, o.Pincode,
			o.Title, o.Size, o.Quantity, o.Price, o.Discount, o.PaymentMethod, o.OrderDate,
		}
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return fmt.Errorf("write order %s: %w", o.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	log.Info().Int("orders", len(orders)).Msg("orders exported")
	return nil
}
