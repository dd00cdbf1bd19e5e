package content

// Scenario is one roleplay conversation setup. HiddenTargets are phrased as
// constraints the constraint analyzer can check against each user turn.
type Scenario struct {
	Title             string
	Brief             string
	Formality         string
	Relationship      string
	RelationshipLabel string
	RegisterTips      string
	HiddenTargets     []string
	Opening           string
}

// ConversationScenarios is the built-in roleplay bank
var ConversationScenarios = []Scenario{
	{
		Title:             "Negociar un reembolso",
		Brief:             "El servicio fallo y necesitas un reembolso parcial sin romper la relacion.",
		Formality:         "formal",
		Relationship:      "service_provider",
		RelationshipLabel: "Stranger (Customer Service)",
		RegisterTips:      "Use 'usted'. Be polite but firm. Avoid overly casual expressions.",
		HiddenTargets: []string{
			"Usa 2 mitigadores (quiza, tal vez, me parece).",
			"Incluye una concesion (aunque, si bien).",
			"Evita 'aplicar para' como calco.",
		},
		Opening: "Buenas tardes. Queria hablar sobre el servicio del mes pasado...",
	},
	{
		Title:             "Resolver un conflicto en el trabajo",
		Brief:             "Un colega no cumplio plazos y necesitas renegociar el cronograma.",
		Formality:         "neutral",
		Relationship:      "coworker",
		RelationshipLabel: "Coworker (Equal Status)",
		RegisterTips:      "Use 'tu'. Balance directness with collegiality. Stay professional but not stiff.",
		HiddenTargets: []string{
			"Usa 1 verbo preciso (afrontar, plantear, desactivar).",
			"Incluye una peticion indirecta (seria posible...?).",
			"Manten registro neutral-formal.",
		},
		Opening: "Oye, queria hablar contigo sobre el proyecto...",
	},
	{
		Title:             "Negociar un alquiler",
		Brief:             "Quieres negociar el precio del alquiler con argumentos solidos.",
		Formality:         "formal",
		Relationship:      "stranger",
		RelationshipLabel: "Stranger (Potential Landlord)",
		RegisterTips:      "Use 'usted'. Be respectful and professional. Show you're a reliable tenant.",
		HiddenTargets: []string{
			"Usa registro formal con usted.",
			"Incluye 2 frases de cortesia.",
			"Menciona datos o comparaciones concretas.",
		},
		Opening: "Buenos dias. Le llamo por el piso que tiene en alquiler...",
	},
	{
		Title:             "Pedir una extension de plazo",
		Brief:             "Necesitas mas tiempo para un entregable sin parecer poco profesional.",
		Formality:         "formal",
		Relationship:      "authority",
		RelationshipLabel: "Authority Figure (Your Manager)",
		RegisterTips:      "Use 'usted' or formal 'tu' depending on workplace culture. Be humble but confident.",
		HiddenTargets: []string{
			"Justifica con razones concretas.",
			"Ofrece una solucion parcial.",
			"Usa condicionales para suavizar.",
		},
		Opening: "Hola, queria comentarte algo sobre el plazo del informe...",
	},
	{
		Title:             "Queja formal en un hotel",
		Brief:             "Tu habitacion tiene problemas y quieres solucion y compensacion.",
		Formality:         "formal",
		Relationship:      "service_provider",
		RelationshipLabel: "Stranger (Hotel Staff)",
		RegisterTips:      "Use 'usted'. Be firm but polite. Document specific issues. Expect professionalism.",
		HiddenTargets: []string{
			"Manten tono firme pero educado.",
			"Enumera los problemas claramente.",
			"Pide compensacion especifica.",
		},
		Opening: "Disculpe, necesito hablar con el encargado sobre mi habitacion...",
	},
}

// PartnerResponses is the scripted reply sequence for the roleplay partner,
// indexed by turn. Turns past the end reuse the final entry.
var PartnerResponses = []string{
	"Entiendo. Dejeme pensar un momento sobre lo que me dice...",
	"Tiene razon en algunos puntos. Sin embargo, me gustaria aclarar algo...",
	"Aprecio su perspectiva. Podriamos considerar otra opcion?",
	"Bueno, eso me parece razonable. Que propone exactamente?",
	"Interesante. Necesito consultar con mi equipo antes de confirmar.",
	"Perfecto, creo que estamos llegando a un acuerdo. Algo mas?",
}
