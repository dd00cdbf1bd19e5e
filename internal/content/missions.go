package content

// MissionTemplate is one daily-mission blueprint
type MissionTemplate struct {
	Type         string // speaking / writing
	Title        string
	Prompt       string
	Constraints  []string
	VocabFocus   []string
	GrammarFocus string
}

// MissionTemplates is the built-in daily-mission bank; one is chosen per
// day with a date-seeded pick so the mission is stable across reloads.
var MissionTemplates = []MissionTemplate{
	{
		Type:   "speaking",
		Title:  "Update de proyecto",
		Prompt: "Graba un update de 60-90 segundos explicando el estado de un proyecto ficticio. Menciona un obstaculo y como lo afrontaste.",
		Constraints: []string{
			"Usa 2 verbos del banco: sopesar, afrontar, plantear, desactivar",
			"Incluye un conector concesivo (aunque, si bien)",
			"Usa vocabulario del dominio profesional",
		},
		VocabFocus:   []string{"sopesar", "afrontar", "plantear"},
		GrammarFocus: "conectores concesivos",
	},
	{
		Type:   "writing",
		Title:  "Email de negociacion",
		Prompt: "Escribe un email de 4-6 oraciones respondiendo a un cliente que pide mas alcance sin ampliar plazos.",
		Constraints: []string{
			"Usa 1 verbo de negociacion (pactar, ceder, plantear)",
			"Incluye una frase de mitigacion (quiza, tal vez, me parece)",
			"Evita calcos del ingles",
		},
		VocabFocus:   []string{"pactar", "plantear", "mitigacion"},
		GrammarFocus: "condicionales para cortesia",
	},
	{
		Type:   "speaking",
		Title:  "Explicar un problema medico",
		Prompt: "Graba 60-90 segundos explicando sintomas a un medico de forma clara y organizada.",
		Constraints: []string{
			"Usa vocabulario del dominio salud",
			"Organiza cronologicamente",
			"Incluye un subjuntivo con recomendacion",
		},
		VocabFocus:   []string{"sintoma", "diagnostico", "consulta"},
		GrammarFocus: "subjuntivo con expresiones de consejo",
	},
	{
		Type:   "writing",
		Title:  "Reclamacion formal",
		Prompt: "Escribe 4-6 oraciones reclamando un retraso en un envio. Se firme pero cortes.",
		Constraints: []string{
			"Usa registro formal con usted",
			"Incluye fechas y datos concretos",
			"Pide solucion especifica",
		},
		VocabFocus:   []string{"reclamar", "plazo", "indemnizacion"},
		GrammarFocus: "condicionales de cortesia",
	},
	{
		Type:   "speaking",
		Title:  "Desacuerdo diplomatico",
		Prompt: "Graba 60-90 segundos expresando desacuerdo con una propuesta de un colega sin crear tension.",
		Constraints: []string{
			"Usa 2 suavizadores (quiza, me parece, tal vez)",
			"Incluye una concesion antes del desacuerdo",
			"Propon una alternativa",
		},
		VocabFocus:   []string{"plantear", "considerar", "alternativa"},
		GrammarFocus: "hedging y mitigacion",
	},
}
