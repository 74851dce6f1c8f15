package seed

import "github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"

type specialty struct {
	name           string
	median         float64
	subspecialties []string
}

var specialties = []specialty{
	{"Anesthesiology", 450000, []string{"Pain Medicine", "Cardiac Anesthesia"}},
	{"Cardiology", 520000, []string{"Interventional", "Electrophysiology"}},
	{"Dermatology", 450000, []string{"Mohs Surgery"}},
	{"Emergency Medicine", 380000, nil},
	{"Family Medicine", 270000, []string{"Sports Medicine"}},
	{"General Surgery", 450000, []string{"Trauma", "Colorectal"}},
	{"Internal Medicine", 290000, []string{"Hospitalist", "Geriatrics"}},
	{"Oncology", 460000, []string{"Hematology", "Radiation Oncology"}},
	{"Orthopedic Surgery", 600000, []string{"Spine", "Joint Replacement"}},
	{"Pediatrics", 250000, []string{"Neonatology"}},
	{"Psychiatry", 320000, []string{"Child and Adolescent"}},
	{"Radiology", 500000, []string{"Neuroradiology", "Interventional Radiology"}},
}

var regionFactor = map[model.Region]float64{
	model.RegionNortheast: 0.97,
	model.RegionMidwest:   1.05,
	model.RegionSouth:     1.02,
	model.RegionWest:      0.98,
}

type practice struct {
	labels []string
	factor float64
}

var practices = []practice{
	{[]string{"Academic", "academic medical center"}, 0.85},
	{[]string{"Hospital Employed", "hospital"}, 1.0},
	{[]string{"Private Practice", "private group"}, 1.12},
}

var cities = map[string][]string{
	"California":    {"Los Angeles", "San Diego", "Sacramento"},
	"Texas":         {"Houston", "Dallas", "Austin"},
	"New York":      {"New York", "Buffalo", "Rochester"},
	"Florida":       {"Miami", "Tampa", "Orlando"},
	"Illinois":      {"Chicago", "Springfield"},
	"Ohio":          {"Columbus", "Cleveland"},
	"Massachusetts": {"Boston", "Worcester"},
	"Washington":    {"Seattle", "Spokane"},
	"Georgia":       {"Atlanta", "Savannah"},
	"Colorado":      {"Denver", "Boulder"},
}
