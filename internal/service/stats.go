package service

import (
	"context"
	"fmt"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/repository"
	"time"
)

type StatsService interface {
	// SalesStats aggregates order items by product, category and day.
	// start and end are inclusive ISO dates (2006-01-02); empty means open.
	SalesStats(ctx context.Context, start, end string) (*dto.SalesStatsResponse, error)
}

type statsServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewStatsService(orderRepo repository.OrderRepository) StatsService {
	return &statsServiceImpl{orderRepo: orderRepo}
}

func (s *statsServiceImpl) SalesStats(ctx context.Context, start, end string) (*dto.SalesStatsResponse, error) {
	from, err := parseDay("start", start)
	if err != nil {
		return nil, err
	}
	to, err := parseDay("end", end)
	if err != nil {
		return nil, err
	}
	if to != nil {
		// inclusive end date: the repository bound is exclusive
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	byProduct, err := s.orderRepo.SalesByProduct(ctx, from, to)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("sales by product: %w", err))
	}
	byCategory, err := s.orderRepo.SalesByCategory(ctx, from, to)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("sales by category: %w", err))
	}
	byDay, err := s.orderRepo.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("sales by day: %w", err))
	}

	resp := &dto.SalesStatsResponse{
		ByProduct:  make([]dto.ProductSales, 0, len(byProduct)),
		ByCategory: make([]dto.CategorySales, 0, len(byCategory)),
		ByDay:      make([]dto.DailySales, 0, len(byDay)),
	}
	for _, row := range byProduct {
		resp.ByProduct = append(resp.ByProduct, dto.ProductSales{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Revenue:   row.Revenue,
		})
	}
	for _, row := range byCategory {
		resp.ByCategory = append(resp.ByCategory, dto.CategorySales{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Quantity:   row.Quantity,
			Revenue:    row.Revenue,
		})
	}
	for _, row := range byDay {
		resp.ByDay = append(resp.ByDay, dto.DailySales{
			Day:     row.Day,
			Orders:  row.Orders,
			Revenue: row.Revenue,
		})
	}

	return resp, nil
}

func parseDay(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, newValidationError(field, "invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
