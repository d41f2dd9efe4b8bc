package config

import (
	"fmt"

	"github.com/kilianp07/fleetmaint/core/inventory"
)

// ResourceConfig describes one technician or bay in the roster.
type ResourceConfig struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"` // "technician" or "bay"
	Skills []string `json:"skills"`
}

// InventoryConfig seeds the shared resource store.
type InventoryConfig struct {
	Resources []ResourceConfig      `json:"resources"`
	Parts     []inventory.PartStock `json:"parts"`
}

// SetDefaults seeds a small workshop when nothing is configured.
func (c *InventoryConfig) SetDefaults() {
	if len(c.Resources) == 0 {
		c.Resources = []ResourceConfig{
			{Name: "bay-1", Kind: "bay"},
			{Name: "bay-2", Kind: "bay"},
			{Name: "tech-1", Kind: "technician", Skills: []string{"engine", "transmission", "general"}},
			{Name: "tech-2", Kind: "technician", Skills: []string{"brakes", "electrical", "general"}},
			{Name: "tech-3", Kind: "technician", Skills: []string{"general"}},
		}
	}
	if len(c.Parts) == 0 {
		c.Parts = []inventory.PartStock{
			{PartNumber: "ENG001", Description: "Coolant pump kit", OnHand: 4, UnitCost: 320, Supplier: "MotorParts", LeadTimeDays: 3},
			{PartNumber: "FLT010", Description: "Oil filter", OnHand: 24, UnitCost: 18, Supplier: "MotorParts", LeadTimeDays: 2},
			{PartNumber: "TRN001", Description: "Transmission overhaul kit", OnHand: 1, UnitCost: 900, Supplier: "GearSupply", LeadTimeDays: 10},
			{PartNumber: "BRK001", Description: "Brake pad set", OnHand: 8, UnitCost: 85, Supplier: "StopCo", LeadTimeDays: 2},
			{PartNumber: "BAT001", Description: "Heavy duty battery", OnHand: 3, UnitCost: 210, Supplier: "VoltHouse", LeadTimeDays: 4},
			{PartNumber: "TIR001", Description: "Commercial tire", OnHand: 0, UnitCost: 95, Supplier: "TreadWorks", LeadTimeDays: 5},
			{PartNumber: "SUS001", Description: "Shock absorber", OnHand: 2, UnitCost: 140, Supplier: "RideWell", LeadTimeDays: 6},
		}
	}
}

// Validate checks the roster kinds.
func (c InventoryConfig) Validate() error {
	for _, r := range c.Resources {
		if r.Kind != "technician" && r.Kind != "bay" {
			return fmt.Errorf("resource %s: unknown kind %q", r.Name, r.Kind)
		}
	}
	return nil
}

// NewStore builds the in-memory resource store from the config.
func (c InventoryConfig) NewStore() *inventory.MemoryStore {
	resources := make([]inventory.Resource, 0, len(c.Resources))
	for _, r := range c.Resources {
		kind := inventory.KindTechnician
		if r.Kind == "bay" {
			kind = inventory.KindBay
		}
		resources = append(resources, inventory.Resource{Name: r.Name, Kind: kind, Skills: r.Skills})
	}
	return inventory.NewMemoryStore(resources, c.Parts)
}
