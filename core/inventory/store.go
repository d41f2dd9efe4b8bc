package inventory

import (
	"fmt"
	"sort"
	"sync"
)

// ResourceKind distinguishes the two scarce resource types of the workshop.
type ResourceKind int

const (
	KindTechnician ResourceKind = iota
	KindBay
)

func (k ResourceKind) String() string {
	if k == KindBay {
		return "bay"
	}
	return "technician"
}

// Resource is a named technician or bay with skill tags.
type Resource struct {
	Name   string       `json:"name"`
	Kind   ResourceKind `json:"kind"`
	Skills []string     `json:"skills,omitempty"`
}

// PartStock is the on-hand state of one part number.
type PartStock struct {
	PartNumber   string  `json:"part_number"`
	Description  string  `json:"description"`
	OnHand       int     `json:"on_hand"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier"`
	LeadTimeDays int     `json:"lead_time_days"`
}

// Store holds the cross-vehicle shared state: the technician/bay roster and
// the parts inventory. It is mutated only by the scheduler, through Commit.
type Store interface {
	// Parts returns a copy of the current stock keyed by part number.
	Parts() map[string]PartStock
	// Resources returns the roster sorted by name.
	Resources() []Resource
	// Commit atomically applies part decrements decided by a scheduling
	// run. It fails without partial application if any decrement would
	// drive stock negative.
	Commit(partDeltas map[string]int) error
}

// MemoryStore is the single-process Store.
type MemoryStore struct {
	mu        sync.RWMutex
	parts     map[string]PartStock
	resources []Resource
}

func NewMemoryStore(resources []Resource, parts []PartStock) *MemoryStore {
	s := &MemoryStore{parts: make(map[string]PartStock, len(parts))}
	s.resources = append(s.resources, resources...)
	sort.Slice(s.resources, func(i, j int) bool { return s.resources[i].Name < s.resources[j].Name })
	for _, p := range parts {
		s.parts[p.PartNumber] = p
	}
	return s
}

func (s *MemoryStore) Parts() map[string]PartStock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]PartStock, len(s.parts))
	for k, v := range s.parts {
		cp[k] = v
	}
	return cp
}

func (s *MemoryStore) Resources() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Resource, len(s.resources))
	copy(cp, s.resources)
	return cp
}

func (s *MemoryStore) Commit(partDeltas map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for no, qty := range partDeltas {
		p, ok := s.parts[no]
		if !ok {
			return fmt.Errorf("unknown part %s", no)
		}
		if p.OnHand < qty {
			return fmt.Errorf("part %s: commit of %d exceeds stock %d", no, qty, p.OnHand)
		}
	}
	for no, qty := range partDeltas {
		p := s.parts[no]
		p.OnHand -= qty
		s.parts[no] = p
	}
	return nil
}

// Restock sets the on-hand quantity for a part, creating it if needed.
func (s *MemoryStore) Restock(p PartStock) {
	s.mu.Lock()
	s.parts[p.PartNumber] = p
	s.mu.Unlock()
}
