package api

import (
	"context"
	"fmt"
)

// StaticService is an in-memory Service with canned demo data. It backs the
// screens until a remote client is wired in, and gives the walkthrough
// stable regions to point at.
type StaticService struct {
	boards   []Board
	expenses map[string][]Expense
}

// NewStaticService returns the demo dataset.
func NewStaticService() *StaticService {
	members := []Member{
		{ID: "u-ana", DisplayName: "Ana", PaidCents: 18450, OwedCents: 15200},
		{ID: "u-ben", DisplayName: "Ben", PaidCents: 9100, OwedCents: 15200, HasUnseen: true},
		{ID: "u-cris", DisplayName: "Cris", PaidCents: 18050, OwedCents: 15200},
	}
	boards := []Board{
		{ID: "b-flat", Name: "Flat 12b", InviteCode: "FLAT-9H2K", Members: members, NetCents: 3250, Currency: "EUR"},
		{ID: "b-trip", Name: "Lisbon trip", InviteCode: "LIS-44QZ", Members: members[:2], NetCents: -1875, Currency: "EUR"},
		{ID: "b-lunch", Name: "Lunch club", InviteCode: "NOM-7TRV", Members: members, NetCents: 0, Currency: "EUR"},
	}
	expenses := map[string][]Expense{
		"b-flat": {
			{ID: "e1", BoardID: "b-flat", PayerID: "u-ana", Note: "Groceries w34", Category: "groceries", AmountCents: 6420, SplitAmong: []string{"u-ana", "u-ben", "u-cris"}},
			{ID: "e2", BoardID: "b-flat", PayerID: "u-cris", Note: "Internet August", Category: "utilities", AmountCents: 3999, SplitAmong: []string{"u-ana", "u-ben", "u-cris"}},
			{ID: "e3", BoardID: "b-flat", PayerID: "u-ben", Note: "Cleaning supplies", Category: "household", AmountCents: 1845, SplitAmong: []string{"u-ana", "u-ben", "u-cris"}},
		},
		"b-trip": {
			{ID: "e4", BoardID: "b-trip", PayerID: "u-ana", Note: "Airbnb deposit", Category: "travel", AmountCents: 12000, SplitAmong: []string{"u-ana", "u-ben"}},
		},
	}
	return &StaticService{boards: boards, expenses: expenses}
}

// Boards lists the demo boards regardless of user.
func (s *StaticService) Boards(_ context.Context, _ string) ([]Board, error) {
	return s.boards, nil
}

// Board returns one board by ID.
func (s *StaticService) Board(_ context.Context, boardID string) (Board, error) {
	for _, b := range s.boards {
		if b.ID == boardID {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("board %q not found", boardID)
}

// Expenses returns the board's feed, newest first.
func (s *StaticService) Expenses(_ context.Context, boardID string) ([]Expense, error) {
	return s.expenses[boardID], nil
}

// Settlements returns canned settle-up suggestions.
func (s *StaticService) Settlements(_ context.Context, boardID string) ([]Settlement, error) {
	if boardID != "b-flat" {
		return nil, nil
	}
	return []Settlement{
		{FromID: "u-ben", ToID: "u-ana", AmountCents: 3250},
		{FromID: "u-ben", ToID: "u-cris", AmountCents: 2850},
	}, nil
}
