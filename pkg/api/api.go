// Package api declares the contracts dv's screens consume from the remote
// expense service. The real client lives server-side of this repo's scope;
// the screens only ever see these interfaces, which keeps the walkthrough
// engine testable against canned data.
package api

import "context"

// Board is one shared-expense group.
type Board struct {
	ID         string
	Name       string
	InviteCode string
	Members    []Member
	// NetCents is the signed balance of the current user on this board:
	// positive means the board owes them.
	NetCents int64
	Currency string
}

// Member is a participant on a board.
type Member struct {
	ID          string
	DisplayName string
	// PaidCents / OwedCents are running totals for the balance table.
	PaidCents int64
	OwedCents int64
	HasUnseen bool
}

// Expense is one recorded cost on a board.
type Expense struct {
	ID          string
	BoardID     string
	PayerID     string
	Note        string
	Category    string
	AmountCents int64
	// SplitAmong lists the member IDs sharing this expense.
	SplitAmong []string
}

// Settlement is a suggested payment that reduces board imbalance.
type Settlement struct {
	FromID      string
	ToID        string
	AmountCents int64
}

// BoardService lists the boards the signed-in user belongs to.
type BoardService interface {
	Boards(ctx context.Context, userID string) ([]Board, error)
	Board(ctx context.Context, boardID string) (Board, error)
}

// ExpenseService reads a board's expense feed.
type ExpenseService interface {
	Expenses(ctx context.Context, boardID string) ([]Expense, error)
}

// SummaryService provides balances and settle-up suggestions.
type SummaryService interface {
	Settlements(ctx context.Context, boardID string) ([]Settlement, error)
}

// Service bundles the remote contracts the screens need.
type Service interface {
	BoardService
	ExpenseService
	SummaryService
}
