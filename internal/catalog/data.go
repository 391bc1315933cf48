package catalog

import "github.com/atinyakov/SmileCare/internal/models"

var doctors = []models.Doctor{
	{ID: 1, Name: "Dr. Sarah Smith", Specialty: "General Dentistry", AvailableTimes: []string{"9:00 AM", "11:30 AM", "2:00 PM"}},
	{ID: 2, Name: "Dr. James Wilson", Specialty: "Orthodontics", AvailableTimes: []string{"10:00 AM", "1:00 PM", "3:30 PM"}},
	{ID: 3, Name: "Dr. Emily Chen", Specialty: "Pediatric Dentistry", AvailableTimes: []string{"9:30 AM", "12:00 PM", "4:00 PM"}},
	{ID: 4, Name: "Dr. Michael Johnson", Specialty: "Oral Surgery", AvailableTimes: []string{"8:00 AM", "10:30 AM", "2:30 PM"}},
}

var appointmentTypes = []models.AppointmentType{
	{ID: "checkup", Name: "Regular Checkup", Duration: "30 min", Price: "$75"},
	{ID: "cleaning", Name: "Teeth Cleaning", Duration: "45 min", Price: "$120"},
	{ID: "whitening", Name: "Teeth Whitening", Duration: "60 min", Price: "$200"},
	{ID: "filling", Name: "Dental Filling", Duration: "45 min", Price: "$150"},
	{ID: "rootcanal", Name: "Root Canal", Duration: "90 min", Price: "$500"},
	{ID: "extraction", Name: "Tooth Extraction", Duration: "60 min", Price: "$180"},
}

const placeholderImage = "/placeholder.svg"

var products = []models.Product{
	{ID: 1, Name: "Electric Toothbrush Pro", Description: "Advanced electric toothbrush with 5 cleaning modes, pressure sensor, and smart timer.", Price: 89.99, Image: placeholderImage, Category: "Toothbrushes", Brand: "OralCare", Rating: 4.7, InStock: true},
	{ID: 2, Name: "Premium Dental Floss Pack", Description: "Waxed dental floss that slides easily between teeth to remove plaque and food particles. Pack of 3 spools.", Price: 12.99, Image: placeholderImage, Category: "Floss", Brand: "DentalEssentials", Rating: 4.5, InStock: true},
	{ID: 3, Name: "Whitening Toothpaste", Description: "Professional whitening toothpaste that removes stains and prevents new ones. Contains fluoride.", Price: 8.99, Image: placeholderImage, Category: "Toothpaste", Brand: "BrightSmile", Rating: 4.3, InStock: true},
	{ID: 4, Name: "Antibacterial Mouthwash", Description: "Alcohol-free mouthwash that kills germs that cause bad breath, plaque, and gingivitis.", Price: 7.49, Image: placeholderImage, Category: "Mouthwash", Brand: "FreshBreath", Rating: 4.4, InStock: true},
	{ID: 5, Name: "Tongue Cleaner Deluxe", Description: "Stainless steel tongue cleaner that removes bacteria and debris from the tongue surface.", Price: 14.99, Image: placeholderImage, Category: "Accessories", Brand: "OralCare", Rating: 4.6, InStock: true},
	{ID: 6, Name: "Sensitive Teeth Gel", Description: "Fast-acting gel that relieves tooth sensitivity and strengthens enamel.", Price: 19.99, Image: placeholderImage, Category: "Treatments", Brand: "SensitiveRelief", Rating: 4.8, InStock: true},
	{ID: 7, Name: "Children's Toothbrush Set", Description: "Soft-bristled toothbrushes sized for small mouths, with fun character handles.", Price: 15.99, Image: placeholderImage, Category: "Toothbrushes", Brand: "KidsDental", Rating: 4.9, InStock: true},
	{ID: 8, Name: "Water Flosser Advanced", Description: "Cordless water flosser with three pressure settings and a rechargeable battery.", Price: 69.99, Image: placeholderImage, Category: "Floss", Brand: "AquaFloss", Rating: 4.7, InStock: true},
	{ID: 9, Name: "Teeth Whitening Kit", Description: "At-home whitening kit with LED accelerator and gel syringes.", Price: 49.99, Image: placeholderImage, Category: "Treatments", Brand: "BrightSmile", Rating: 4.5, InStock: true},
	{ID: 10, Name: "Gum Massage Tool", Description: "Rubber-tipped stimulator that improves gum circulation.", Price: 11.99, Image: placeholderImage, Category: "Accessories", Brand: "GumHealth", Rating: 4.2, InStock: true},
	{ID: 11, Name: "Bamboo Toothbrushes (Pack of 4)", Description: "Biodegradable bamboo handles with charcoal-infused bristles.", Price: 16.99, Image: placeholderImage, Category: "Toothbrushes", Brand: "EcoDental", Rating: 4.6, InStock: true},
	{ID: 12, Name: "Fluoride-Free Natural Toothpaste", Description: "Plant-based toothpaste with xylitol and peppermint oil.", Price: 9.99, Image: placeholderImage, Category: "Toothpaste", Brand: "NaturalSmile", Rating: 4.4, InStock: true},
}

var treatmentPlan = models.TreatmentPlan{
	ID:          "TP-2023-001",
	Dentist:     "Dr. Michael Smith",
	Created:     "2023-09-10",
	LastUpdated: "2023-10-05",
	Status:      "In Progress",
	Treatments: []models.Treatment{
		{ID: 1, Name: "Initial Consultation", Status: models.TreatmentCompleted, Date: "2023-09-15", Cost: 150, InsuranceCoverage: 150, Provider: "Dr. Smith"},
		{ID: 2, Name: "Deep Cleaning", Status: models.TreatmentCompleted, Date: "2023-09-28", Cost: 300, InsuranceCoverage: 240, Provider: "Dr. Wilson"},
		{ID: 3, Name: "Filling (Tooth #14)", Status: models.TreatmentScheduled, Date: "2023-10-20", Cost: 200, InsuranceCoverage: 160, Provider: "Dr. Smith"},
		{ID: 4, Name: "Filling (Tooth #18)", Status: models.TreatmentScheduled, Date: "2023-10-20", Cost: 200, InsuranceCoverage: 160, Provider: "Dr. Smith"},
		{ID: 5, Name: "Root Canal", Status: models.TreatmentPending, Date: "2023-11-10", Cost: 1200, InsuranceCoverage: 600, Provider: "Dr. Chen"},
		{ID: 6, Name: "Crown", Status: models.TreatmentPending, Date: "2023-11-24", Cost: 800, InsuranceCoverage: 400, Provider: "Dr. Smith"},
	},
}
