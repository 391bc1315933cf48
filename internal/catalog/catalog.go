// Package catalog serves the static doctor, appointment type and product
// data the portal is built around, and product search for the marketplace.
package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/atinyakov/SmileCare/internal/models"
)

// Sort keys accepted by ProductQuery.Sort.
const (
	SortNameAsc    = "name-asc"
	SortNameDesc   = "name-desc"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingDesc = "rating-desc"
)

// ProductQuery filters and orders the product list.
type ProductQuery struct {
	// Search matches name, description, brand or category, case-insensitively.
	Search string
	// Categories keeps only products in one of these categories, if set.
	Categories []string
	// Brands keeps only products of one of these brands, if set.
	Brands []string
	// Sort is one of the Sort* keys; empty means SortRatingDesc.
	Sort string
}

// Doctors returns the doctor catalog.
func Doctors() []models.Doctor {
	out := make([]models.Doctor, len(doctors))
	for i, d := range doctors {
		d.AvailableTimes = slices.Clone(d.AvailableTimes)
		out[i] = d
	}
	return out
}

// DoctorByID looks up a doctor.
func DoctorByID(id int) (models.Doctor, bool) {
	for _, d := range doctors {
		if d.ID == id {
			d.AvailableTimes = slices.Clone(d.AvailableTimes)
			return d, true
		}
	}
	return models.Doctor{}, false
}

func AppointmentTypes() []models.AppointmentType {
	return slices.Clone(appointmentTypes)
}

func Products() []models.Product {
	return slices.Clone(products)
}

// ProductByID looks up a product.
func ProductByID(id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// TreatmentPlan returns the read-only treatment plan made out to patient.
func TreatmentPlan(patient string) models.TreatmentPlan {
	p := treatmentPlan
	p.PatientName = patient
	p.Treatments = slices.Clone(treatmentPlan.Treatments)
	return p
}

// Categories returns the distinct product categories, sorted.
func Categories() []string {
	return distinct(func(p models.Product) string { return p.Category })
}

// Brands returns the distinct product brands, sorted.
func Brands() []string {
	return distinct(func(p models.Product) string { return p.Brand })
}

func distinct(field func(models.Product) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Search applies q to the product catalog.
func Search(q ProductQuery) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matches(p, needle) {
			continue
		}
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
			continue
		}
		if len(q.Brands) > 0 && !slices.Contains(q.Brands, p.Brand) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name) })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRatingDesc, "":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func matches(p models.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Description, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
