package model

import (
	"fmt"
	"time"
)

// TaskType distinguishes how a maintenance task was originated.
type TaskType int

const (
	TaskCorrective TaskType = iota
	TaskPreventive
	TaskPredictive
	TaskEmergency
)

var taskTypeNames = map[TaskType]string{
	TaskCorrective: "corrective",
	TaskPreventive: "preventive",
	TaskPredictive: "predictive",
	TaskEmergency:  "emergency",
}

func (t TaskType) String() string {
	if s, ok := taskTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// TaskCategory describes the nature of the work performed.
type TaskCategory int

const (
	CategoryInspection TaskCategory = iota
	CategoryService
	CategoryRepair
	CategoryReplacement
)

var categoryNames = map[TaskCategory]string{
	CategoryInspection:  "inspection",
	CategoryService:     "service",
	CategoryRepair:      "repair",
	CategoryReplacement: "replacement",
}

func (c TaskCategory) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// TaskStatus tracks a task through its lifecycle. Completed and Cancelled
// are terminal.
type TaskStatus int

const (
	StatusScheduled TaskStatus = iota
	StatusInProgress
	StatusCompleted
	StatusOverdue
	StatusCancelled
)

var statusNames = map[TaskStatus]string{
	StatusScheduled:  "scheduled",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusOverdue:    "overdue",
	StatusCancelled:  "cancelled",
}

func (s TaskStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether no further transitions are allowed from s.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is a legal status
// change: scheduled → in_progress → completed, scheduled → overdue when the
// date passes, and any non-terminal state may be cancelled.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusCancelled:
		return true
	case StatusInProgress:
		return s == StatusScheduled || s == StatusOverdue
	case StatusCompleted:
		return s == StatusInProgress
	case StatusOverdue:
		return s == StatusScheduled
	default:
		return false
	}
}

// Part describes one part required by a maintenance task.
type Part struct {
	PartNumber   string  `json:"part_number"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier"`
	LeadTimeDays int     `json:"lead_time_days"`
	InStock      bool    `json:"in_stock"`
}

// MaintenanceTask is a schedulable unit of work on one vehicle.
type MaintenanceTask struct {
	ID                 string       `json:"id"`
	VehicleID          string       `json:"vehicle_id"`
	Type               TaskType     `json:"type"`
	Category           TaskCategory `json:"category"`
	Component          Component    `json:"component"`
	Description        string       `json:"description"`
	ScheduledDate      time.Time    `json:"scheduled_date"`
	DurationHours      float64      `json:"duration_hours"`
	EstimatedCost      float64      `json:"estimated_cost"`
	Priority           RiskLevel    `json:"priority"`
	Status             TaskStatus   `json:"status"`
	AssignedTechnician string       `json:"assigned_technician,omitempty"`
	AssignmentNote     string       `json:"assignment_note,omitempty"`
	RequiredParts      []Part       `json:"required_parts,omitempty"`
	RequiredTools      []string     `json:"required_tools,omitempty"`
	SafetyRequirements []string     `json:"safety_requirements,omitempty"`
	CompletionCriteria string       `json:"completion_criteria,omitempty"`
	Blocked            bool         `json:"blocked"`
	BlockedReason      string       `json:"blocked_reason,omitempty"`
}

// Transition moves the task to the next status, enforcing the lifecycle
// state machine.
func (t *MaintenanceTask) Transition(next TaskStatus) error {
	if !t.Status.CanTransition(next) {
		return fmt.Errorf("illegal task transition %s -> %s", t.Status, next)
	}
	t.Status = next
	return nil
}
