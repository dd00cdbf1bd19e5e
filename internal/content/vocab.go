package content

// VocabUnit is one seed vocabulary entry with its collocations
type VocabUnit struct {
	Term         string
	Meaning      string
	Example      string
	Domain       string
	Register     string
	PartOfSpeech string
	Collocations []string
}

// Domains are the topic areas tracked for exposure balancing
var Domains = []string{
	"Healthcare", "Housing", "Relationships", "Travel problems",
	"Workplace conflict", "Finance", "Cooking", "Emotions",
	"Bureaucracy", "Everyday slang-light",
}

// VocabSeed is the built-in starter vocabulary
var VocabSeed = []VocabUnit{
	{
		Term:         "tomar una decision",
		Meaning:      "to make a decision",
		Example:      "Tras revisar los datos, el comite tomo una decision estrategica.",
		Domain:       "Workplace conflict",
		Register:     "neutral",
		PartOfSpeech: "verb phrase",
		Collocations: []string{"tomar una decision", "tomar una postura", "tomar medidas"},
	},
	{
		Term:         "llevar a cabo",
		Meaning:      "to carry out, to execute",
		Example:      "El equipo logro llevar a cabo todas las fases del plan.",
		Domain:       "Workplace conflict",
		Register:     "neutral",
		PartOfSpeech: "verb phrase",
		Collocations: []string{"llevar a cabo", "llevar adelante", "llevar a termino"},
	},
	{
		Term:         "me da la sensacion de que",
		Meaning:      "I get the feeling that",
		Example:      "Me da la sensacion de que el cliente esta dudando.",
		Domain:       "Emotions",
		Register:     "informal",
		PartOfSpeech: "fixed expression",
		Collocations: []string{"me da la sensacion de que", "me da la impresion de que", "tengo la sensacion de que"},
	},
	{
		Term:         "sopesar",
		Meaning:      "to weigh up, to consider carefully",
		Example:      "Hay que sopesar los riesgos antes de firmar.",
		Domain:       "Finance",
		Register:     "formal",
		PartOfSpeech: "verb",
		Collocations: []string{"sopesar los riesgos", "sopesar las opciones"},
	},
	{
		Term:         "tramitar",
		Meaning:      "to process (paperwork)",
		Example:      "Necesito tramitar la renovacion del permiso de residencia.",
		Domain:       "Bureaucracy",
		Register:     "formal",
		PartOfSpeech: "verb",
		Collocations: []string{"tramitar una solicitud", "tramitar un permiso"},
	},
	{
		Term:         "ponerse de acuerdo",
		Meaning:      "to come to an agreement",
		Example:      "Al final nos pusimos de acuerdo sobre el reparto de tareas.",
		Domain:       "Relationships",
		Register:     "neutral",
		PartOfSpeech: "verb phrase",
		Collocations: []string{"ponerse de acuerdo", "llegar a un acuerdo"},
	},
	{
		Term:         "hacer escala",
		Meaning:      "to have a layover",
		Example:      "El vuelo hace escala en Bogota antes de llegar a Lima.",
		Domain:       "Travel problems",
		Register:     "neutral",
		PartOfSpeech: "verb phrase",
		Collocations: []string{"hacer escala", "perder la conexion"},
	},
	{
		Term:         "pedir cita",
		Meaning:      "to make an appointment",
		Example:      "Tuve que pedir cita con el especialista con dos meses de antelacion.",
		Domain:       "Healthcare",
		Register:     "neutral",
		PartOfSpeech: "verb phrase",
		Collocations: []string{"pedir cita", "anular la cita", "cita previa"},
	},
	{
		Term:         "a fin de cuentas",
		Meaning:      "at the end of the day, all things considered",
		Example:      "A fin de cuentas, lo importante es que el proyecto salio adelante.",
		Domain:       "Everyday slang-light",
		Register:     "informal",
		PartOfSpeech: "fixed expression",
		Collocations: []string{"a fin de cuentas", "al fin y al cabo"},
	},
	{
		Term:         "sofreir",
		Meaning:      "to saute lightly",
		Example:      "Sofrie la cebolla antes de anadir el arroz.",
		Domain:       "Cooking",
		Register:     "neutral",
		PartOfSpeech: "verb",
		Collocations: []string{"sofreir la cebolla", "sofreir a fuego lento"},
	},
}
