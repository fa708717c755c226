package walkthrough

// Built-in step tables for the divvy screens.
//
// Target regions are expressed against the reference viewport (see
// RefViewport); the Resolver clamps placements into whatever terminal the
// user actually has. Sequencing is positional — the slice order below is the
// play order.

// RefViewport is the layout grid the built-in target regions are authored
// against. The stub screens in pkg/ui draw their panes on the same grid.
var RefViewport = Size{Width: 100, Height: 30}

// BuiltinScreens returns the compiled-in step tables. The result is a fresh
// map on every call so callers can overlay it without aliasing.
func BuiltinScreens() map[ScreenID][]Step {
	return map[ScreenID][]Step{
		ScreenBoards:   boardsSteps(),
		ScreenBoard:    boardSteps(),
		ScreenSummary:  summarySteps(),
		ScreenSettings: settingsSteps(),
	}
}

// DefaultRegistry returns a registry over the built-in tables.
func DefaultRegistry() *Registry {
	return MustNewRegistry(BuiltinScreens())
}

// =============================================================================
// BOARDS — the home screen: every shared-expense board you are a member of.
// =============================================================================

func boardsSteps() []Step {
	return []Step{
		{
			ID:    "boards-welcome",
			Title: "Welcome to divvy",
			Body: `## Shared expenses, settled in the terminal

A **board** collects the shared costs of one group — a household, a trip,
a team lunch rotation. Everyone on the board records what they paid, and
divvy keeps track of who owes whom.

This short tour walks you through the screens. You can leave it at any
point with **s** and replay it later from Settings.

> Press **n** to continue.`,
			Target: Rect{X: 2, Y: 3, Width: 40, Height: 20},
			Arrow:  ArrowLeft,
			Action: Action{Kind: ActionHighlightOnly},
		},
		{
			ID:    "boards-list",
			Title: "Your boards",
			Body: `Each row is one board: its name, the member count, and your
running balance on it.

| Marker | Meaning |
|--------|---------|
| **▲**  | the board owes you |
| **▼**  | you owe the board |
| **=**  | settled up |

Move with **j/k** and open a board with **Enter**.`,
			Target: Rect{X: 2, Y: 3, Width: 40, Height: 20},
			Arrow:  ArrowLeft,
		},
		{
			ID:    "boards-balance",
			Title: "Your overall balance",
			Body: `This chip sums your position across every board.

Green means you are owed money overall; red means you owe. It updates the
moment anyone on any of your boards records an expense.`,
			Target: Rect{X: 60, Y: 3, Width: 30, Height: 5},
			Arrow:  ArrowRight,
		},
		{
			ID:    "boards-create",
			Title: "Starting a new board",
			Body: `Press **c** here to create a board, then share its invite code
with the people you split costs with. Anyone with the code joins instantly —
no accounts beyond a display name.`,
			Target: Rect{X: 2, Y: 26, Width: 50, Height: 3},
			Arrow:  ArrowBottom,
		},
		{
			ID:    "boards-open",
			Title: "Try it yourself",
			Body: `That is the home screen. Now **open one of your boards with
Enter** — the tour continues there, on the board's expense feed.

(If you had already dismissed the board tour, it will play again once, so
the two halves stay connected.)`,
			Target: Rect{}, // hand-off: centered, no concrete element
			Arrow:  ArrowTop,
			Action: Action{Kind: ActionHandoff, Target: ScreenBoard},
		},
	}
}

// =============================================================================
// BOARD — one board's expense feed.
// =============================================================================

func boardSteps() []Step {
	return []Step{
		{
			ID:    "board-feed",
			Title: "The expense feed",
			Body: `Every cost anyone on this board records lands here, newest
first: who paid, how much, what for, and which members share it.

Scroll with **j/k**; **Enter** shows an expense's full split.`,
			Target: Rect{X: 2, Y: 3, Width: 55, Height: 22},
			Arrow:  ArrowLeft,
		},
		{
			ID:    "board-add",
			Title: "Recording an expense",
			Body: `Press **a** to add an expense. You only type the amount and a
note — by default it is split evenly across all members, and you can
deselect members who did not take part.

Receipts can be attached later from the expense's detail view.`,
			Target: Rect{X: 2, Y: 26, Width: 55, Height: 3},
			Arrow:  ArrowBottom,
		},
		{
			ID:    "board-members",
			Title: "Who is on this board",
			Body: `The member strip shows everyone splitting costs here, with
their share of the running total underneath.

A dot next to a name means they have unseen expenses — handy to know
before you chase anyone for money.`,
			Target: Rect{X: 60, Y: 3, Width: 35, Height: 4},
			Arrow:  ArrowRight,
		},
		{
			ID:    "board-code",
			Title: "Inviting people",
			Body: `This is the board's invite code. Press **C** to copy it to the
clipboard and send it over whatever channel your group uses.

Codes never expire; regenerate one from the board menu if it leaks.`,
			Target: Rect{X: 60, Y: 8, Width: 35, Height: 3},
			Arrow:  ArrowRight,
		},
		{
			ID:    "board-categories",
			Title: "Categories",
			Body: `Expenses carry a category (groceries, rent, travel, …) shown as
the colored tag on each row. Categories drive the per-category breakdown on
the Summary screen — they are worth the one extra keystroke.`,
			Target: Rect{X: 2, Y: 3, Width: 55, Height: 22},
			Arrow:  ArrowLeft,
			Action: Action{Kind: ActionHighlightOnly},
		},
		{
			ID:    "board-summary-handoff",
			Title: "See where you stand",
			Body: `Recording is half the story; the other half is settling.
**Switch to the Summary tab yourself** (press **3**) and the tour will pick
up there with the balance table.`,
			Target: Rect{},
			Arrow:  ArrowTop,
			Action: Action{Kind: ActionHandoff, Target: ScreenSummary},
		},
	}
}

// =============================================================================
// SUMMARY — balances and settle-up suggestions for the active board.
// =============================================================================

func summarySteps() []Step {
	return []Step{
		{
			ID:    "summary-balances",
			Title: "The balance table",
			Body: `One row per member: paid, owed, and the net position.

Positive net (green) means the board owes them; negative (red) means they
owe the board. The column you care about day to day is **net**.`,
			Target: Rect{X: 2, Y: 3, Width: 50, Height: 14},
			Arrow:  ArrowLeft,
		},
		{
			ID:    "summary-settle",
			Title: "Settling up",
			Body: `divvy suggests the smallest set of payments that zeroes every
balance. Press **Enter** on a suggestion once the money has actually moved
and both balances update for everyone.`,
			Target: Rect{X: 2, Y: 18, Width: 50, Height: 5},
			Arrow:  ArrowTop,
		},
		{
			ID:    "summary-categories",
			Title: "Category breakdown",
			Body: `The right pane splits the board's spending by category for the
current month. Use **[** and **]** to page through earlier months.`,
			Target: Rect{X: 56, Y: 3, Width: 40, Height: 14},
			Arrow:  ArrowRight,
		},
		{
			ID:    "summary-done",
			Title: "That's the tour",
			Body: `You have seen the whole flow: boards → expenses → balances.

Two parting pointers:

- **Settings** (tab **4**) holds your display name and notification
  preferences, and can replay any part of this walkthrough.
- **?** shows the key reference for whichever screen you are on.

Enjoy splitting fairly!`,
			Target: Rect{X: 2, Y: 3, Width: 94, Height: 22},
			Arrow:  ArrowLeft,
			Action: Action{Kind: ActionHighlightOnly},
		},
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

func settingsSteps() []Step {
	return []Step{
		{
			ID:    "settings-profile",
			Title: "Your profile",
			Body: `Your display name is what other board members see on expenses
and balances. Change it here; it applies to every board at once.`,
			Target: Rect{X: 2, Y: 3, Width: 40, Height: 3},
			Arrow:  ArrowTop,
		},
		{
			ID:    "settings-replay",
			Title: "Replaying the tour",
			Body: `This row restarts the walkthrough for a screen of your choice —
useful after a while away, or when someone new borrows your keyboard.`,
			Target: Rect{X: 2, Y: 7, Width: 40, Height: 3},
			Arrow:  ArrowTop,
		},
		{
			ID:    "settings-notifications",
			Title: "Notifications",
			Body: `Choose when divvy nudges you: new expenses, settle-up requests,
or a weekly digest. Everything is off by default except settle-ups.`,
			Target: Rect{X: 2, Y: 11, Width: 40, Height: 3},
			Arrow:  ArrowTop,
		},
	}
}
