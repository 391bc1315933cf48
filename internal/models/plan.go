package models

import "slices"

// TreatmentStatus is the state of a planned treatment.
type TreatmentStatus string

const (
	TreatmentCompleted TreatmentStatus = "completed"
	TreatmentScheduled TreatmentStatus = "scheduled"
	TreatmentPending   TreatmentStatus = "pending"
)

// Installments is the number of monthly payments offered for a plan.
const Installments = 6

// PayInFullDiscount is the share of the out-of-pocket amount charged when
// paying the plan up front.
const PayInFullDiscount = 0.9

// Treatment is one procedure of a treatment plan.
type Treatment struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Status TreatmentStatus `json:"status"`
	// Date is the planned day, "2006-01-02".
	Date              string  `json:"date"`
	Cost              float64 `json:"cost"`
	InsuranceCoverage float64 `json:"insuranceCoverage"`
	Provider          string  `json:"provider"`
}

// OutOfPocket is the part of the cost insurance does not cover.
func (t Treatment) OutOfPocket() float64 {
	return t.Cost - t.InsuranceCoverage
}

// TreatmentPlan is a patient's multi-visit plan.
type TreatmentPlan struct {
	ID          string      `json:"id"`
	PatientName string      `json:"patientName"`
	Dentist     string      `json:"dentist"`
	Created     string      `json:"created"`
	LastUpdated string      `json:"lastUpdated"`
	Status      string      `json:"status"`
	Treatments  []Treatment `json:"treatments"`
}

// Progress is the percentage of completed treatments, 0 for an empty plan.
func (p TreatmentPlan) Progress() float64 {
	if len(p.Treatments) == 0 {
		return 0
	}
	return float64(p.Count(TreatmentCompleted)) / float64(len(p.Treatments)) * 100
}

// Count returns how many treatments have status st.
func (p TreatmentPlan) Count(st TreatmentStatus) int {
	n := 0
	for _, t := range p.Treatments {
		if t.Status == st {
			n++
		}
	}
	return n
}

func (p TreatmentPlan) TotalCost() float64 {
	var sum float64
	for _, t := range p.Treatments {
		sum += t.Cost
	}
	return sum
}

func (p TreatmentPlan) InsuranceCoverage() float64 {
	var sum float64
	for _, t := range p.Treatments {
		sum += t.InsuranceCoverage
	}
	return sum
}

func (p TreatmentPlan) OutOfPocket() float64 {
	return p.TotalCost() - p.InsuranceCoverage()
}

// NextVisit returns the scheduled treatments sharing the earliest scheduled
// date, in plan order.
func (p TreatmentPlan) NextVisit() []Treatment {
	var next []Treatment
	for _, t := range p.Treatments {
		if t.Status != TreatmentScheduled {
			continue
		}
		switch {
		case len(next) == 0 || t.Date < next[0].Date:
			next = []Treatment{t}
		case t.Date == next[0].Date:
			next = append(next, t)
		}
	}
	return next
}

// PlanSummary is a plan together with the figures derived from it.
type PlanSummary struct {
	TreatmentPlan
	Progress          float64                 `json:"progress"`
	Counts            map[TreatmentStatus]int `json:"counts"`
	TotalCost         float64                 `json:"totalCost"`
	InsuranceCoverage float64                 `json:"insuranceCoverage"`
	OutOfPocket       float64                 `json:"outOfPocket"`
	PayInFull         float64                 `json:"payInFull"`
	MonthlyPayment    float64                 `json:"monthlyPayment"`
	NextVisit         []Treatment             `json:"nextVisit"`
}

// Summary derives progress, status counts, the cost breakdown and the next
// visit from p.
func (p TreatmentPlan) Summary() PlanSummary {
	oop := p.OutOfPocket()
	p.Treatments = slices.Clone(p.Treatments)
	return PlanSummary{
		TreatmentPlan: p,
		Progress:      p.Progress(),
		Counts: map[TreatmentStatus]int{
			TreatmentCompleted: p.Count(TreatmentCompleted),
			TreatmentScheduled: p.Count(TreatmentScheduled),
			TreatmentPending:   p.Count(TreatmentPending),
		},
		TotalCost:         p.TotalCost(),
		InsuranceCoverage: p.InsuranceCoverage(),
		OutOfPocket:       oop,
		PayInFull:         oop * PayInFullDiscount,
		MonthlyPayment:    oop / Installments,
		NextVisit:         append([]Treatment{}, p.NextVisit()...),
	}
}
