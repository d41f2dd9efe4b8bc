package inventory

import "time"

// Ledger is one scheduling run's transactional view of the shared resource
// state. It is seeded from a Store snapshot and accumulates reservations
// in-memory, so concurrent runs never double-book a technician or
// over-allocate a low-stock part, and a run that is never committed leaves
// the store untouched.
type Ledger struct {
	parts     map[string]PartStock
	resources []Resource
	// bookings maps resource name -> set of booked days (UTC midnight).
	bookings   map[string]map[time.Time]bool
	partDeltas map[string]int
}

// NewLedger snapshots the store into a fresh ledger.
func NewLedger(s Store) *Ledger {
	return &Ledger{
		parts:      s.Parts(),
		resources:  s.Resources(),
		bookings:   make(map[string]map[time.Time]bool),
		partDeltas: make(map[string]int),
	}
}

// PartReservation is the outcome of a part availability check.
type PartReservation struct {
	Reserved     bool
	Known        bool // part exists in the catalog
	LeadTimeDays int  // valid when Known and not Reserved
	UnitCost     float64
	Supplier     string
	Description  string
}

// ReservePart attempts to take qty units of the part out of the ledger's
// view of stock. When stock is short it reports the lead time instead, and
// reserves nothing.
func (l *Ledger) ReservePart(partNumber string, qty int) PartReservation {
	p, ok := l.parts[partNumber]
	if !ok {
		return PartReservation{}
	}
	res := PartReservation{
		Known:        true,
		LeadTimeDays: p.LeadTimeDays,
		UnitCost:     p.UnitCost,
		Supplier:     p.Supplier,
		Description:  p.Description,
	}
	if p.OnHand < qty {
		return res
	}
	p.OnHand -= qty
	l.parts[partNumber] = p
	l.partDeltas[partNumber] += qty
	res.Reserved = true
	return res
}

// ReserveTechnician books the first technician carrying the skill (falling
// back to "general") that is free on the given day. The day granularity
// matches the scheduler's one-task-per-technician-per-day rule.
func (l *Ledger) ReserveTechnician(skill string, day time.Time) (string, bool) {
	day = day.UTC().Truncate(24 * time.Hour)
	for _, fallback := range []string{skill, "general"} {
		for _, r := range l.resources {
			if r.Kind != KindTechnician || !hasSkill(r, fallback) {
				continue
			}
			if l.bookings[r.Name][day] {
				continue
			}
			l.book(r.Name, day)
			return r.Name, true
		}
		if fallback == skill && skill == "general" {
			break
		}
	}
	return "", false
}

// BayFree reports whether bay capacity remains on the given day without
// booking anything.
func (l *Ledger) BayFree(day time.Time) bool {
	day = day.UTC().Truncate(24 * time.Hour)
	total := 0
	for _, r := range l.resources {
		if r.Kind != KindBay {
			continue
		}
		total++
		if !l.bookings[r.Name][day] {
			return true
		}
	}
	return total == 0
}

// ReserveBay books bay capacity on the given day. With no bays in the roster
// the check passes, matching a fleet without a managed workshop.
func (l *Ledger) ReserveBay(day time.Time) bool {
	day = day.UTC().Truncate(24 * time.Hour)
	total := 0
	for _, r := range l.resources {
		if r.Kind != KindBay {
			continue
		}
		total++
		if !l.bookings[r.Name][day] {
			l.book(r.Name, day)
			return true
		}
	}
	return total == 0
}

// PartDeltas returns the part quantities reserved so far, suitable for
// Store.Commit.
func (l *Ledger) PartDeltas() map[string]int {
	cp := make(map[string]int, len(l.partDeltas))
	for k, v := range l.partDeltas {
		cp[k] = v
	}
	return cp
}

func (l *Ledger) book(name string, day time.Time) {
	if l.bookings[name] == nil {
		l.bookings[name] = make(map[time.Time]bool)
	}
	l.bookings[name][day] = true
}

func hasSkill(r Resource, skill string) bool {
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
