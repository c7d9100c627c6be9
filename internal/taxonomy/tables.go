package taxonomy

// DefaultTable returns the built-in specialty table. Deployments can overlay
// additional entries from a YAML file (see internal/tables).
func DefaultTable() *Table {
	return &Table{
		Synonyms: map[string]string{
			// Eye care
			"ophthalmologist":       "Ophthalmology",
			"eye doctor":            "Ophthalmology",
			"eye surgeon":           "Ophthalmology",
			"eye specialist":        "Ophthalmology",
			"oculist":               "Ophthalmology",
			"retina surgeon":        "Retina Surgery",
			"retinal surgeon":       "Retina Surgery",
			"retina specialist":     "Retina Surgery",
			"vitreoretinal surgeon": "Retina Surgery",
			"glaucoma specialist":   "Glaucoma",
			"cornea specialist":     "Cornea & External Disease",
			"optometrist":           "Optometry",

			// Heart and vessels
			"cardiologist":                "Cardiology",
			"heart doctor":                "Cardiology",
			"heart specialist":            "Cardiology",
			"interventional cardiologist": "Interventional Cardiology",
			"heart surgeon":               "Cardiothoracic Surgery",
			"cardiac surgeon":             "Cardiothoracic Surgery",
			"vascular surgeon":            "Vascular Surgery",

			// Skin
			"dermatologist":   "Dermatology",
			"skin doctor":     "Dermatology",
			"skin specialist": "Dermatology",
			"mohs surgeon":    "Mohs Surgery",

			// Children
			"pediatrician":         "Pediatrics",
			"paediatrician":        "Pediatrics",
			"kids doctor":          "Pediatrics",
			"childrens doctor":     "Pediatrics",
			"neonatologist":        "Neonatology",
			"pediatric cardiology": "Pediatric Cardiology",

			// Bones and joints
			"orthopedist":        "Orthopedic Surgery",
			"orthopedic surgeon": "Orthopedic Surgery",
			"orthopaedic":        "Orthopedic Surgery",
			"bone doctor":        "Orthopedic Surgery",
			"sports medicine":    "Sports Medicine",
			"hand surgeon":       "Hand Surgery",

			// Brain and nerves
			"neurologist":  "Neurology",
			"nerve doctor": "Neurology",
			"neurosurgeon": "Neurological Surgery",
			"brain surgeon": "Neurological Surgery",

			// Cancer
			"oncologist":         "Oncology",
			"cancer doctor":      "Oncology",
			"cancer specialist":  "Oncology",
			"radiation oncology": "Radiation Oncology",
			"hematologist":       "Hematology",

			// Mental health
			"psychiatrist": "Psychiatry",
			"psychologist": "Psychology",

			// Primary care
			"family doctor":       "Family Medicine",
			"family practice":     "Family Medicine",
			"family physician":    "Family Medicine",
			"general practitioner": Generic,
			"primary care":        Generic,
			"internist":           "Internal Medicine",
			"internal medicine":   "Internal Medicine",

			// Women's health
			"gynecologist": "Obstetrics & Gynecology",
			"obstetrician": "Obstetrics & Gynecology",
			"ob gyn":       "Obstetrics & Gynecology",
			"obgyn":        "Obstetrics & Gynecology",

			// Digestive
			"gastroenterologist": "Gastroenterology",
			"stomach doctor":     "Gastroenterology",
			"gi doctor":          "Gastroenterology",

			// Other organ systems
			"urologist":       "Urology",
			"nephrologist":    "Nephrology",
			"kidney doctor":   "Nephrology",
			"endocrinologist": "Endocrinology",
			"diabetes doctor": "Endocrinology",
			"pulmonologist":   "Pulmonology",
			"lung doctor":     "Pulmonology",
			"rheumatologist":  "Rheumatology",
			"allergist":       "Allergy & Immunology",
			"immunologist":    "Allergy & Immunology",

			// Ear, nose, throat
			"otolaryngologist":      "Otolaryngology",
			"ear nose and throat":   "Otolaryngology",
			"ear nose throat":       "Otolaryngology",
			"ent doctor":            "Otolaryngology",
			"ent specialist":        "Otolaryngology",

			// Surgery and procedural
			"general surgeon": "General Surgery",
			"plastic surgeon": "Plastic Surgery",
			"anesthesiologist": "Anesthesiology",
			"radiologist":     "Radiology",
			"podiatrist":      "Podiatry",
			"foot doctor":     "Podiatry",
			"chiropractor":    "Chiropractic",
		},
		Broader: map[string]string{
			"Retina Surgery":            "Ophthalmology",
			"Glaucoma":                  "Ophthalmology",
			"Cornea & External Disease": "Ophthalmology",
			"Interventional Cardiology": "Cardiology",
			"Pediatric Cardiology":      "Cardiology",
			"Mohs Surgery":              "Dermatology",
			"Neonatology":               "Pediatrics",
			"Sports Medicine":           "Orthopedic Surgery",
			"Hand Surgery":              "Orthopedic Surgery",
			"Radiation Oncology":        "Oncology",
			"Hematology":                "Oncology",
			"Neurological Surgery":      "Neurology",
			"Cardiothoracic Surgery":    "Cardiology",
		},
		Related: map[string][]string{
			"Ophthalmology": {"Retina Surgery", "Glaucoma", "Cornea & External Disease", "Optometry"},
			"Retina Surgery": {"Ophthalmology", "Glaucoma"},
			"Cardiology":     {"Interventional Cardiology", "Cardiothoracic Surgery", "Vascular Surgery"},
			"Dermatology":    {"Mohs Surgery", "Plastic Surgery"},
			"Pediatrics":     {"Family Medicine", "Neonatology"},
			"Orthopedic Surgery": {"Sports Medicine", "Hand Surgery", "Rheumatology"},
			"Neurology":          {"Neurological Surgery", "Psychiatry"},
			"Oncology":           {"Hematology", "Radiation Oncology"},
			"Family Medicine":    {"Internal Medicine", Generic},
			"Internal Medicine":  {"Family Medicine", Generic},
			"Obstetrics & Gynecology": {"Family Medicine"},
			"Gastroenterology":        {"Internal Medicine", "General Surgery"},
			"Otolaryngology":          {"Allergy & Immunology", "General Surgery"},
			"Pulmonology":             {"Internal Medicine", "Allergy & Immunology"},
			"Nephrology":              {"Internal Medicine", "Urology"},
			"Endocrinology":           {"Internal Medicine"},
		},
	}
}

// Default returns a Taxonomy built from the built-in table.
func Default() *Taxonomy {
	return New(DefaultTable())
}
