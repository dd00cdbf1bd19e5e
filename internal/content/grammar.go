package content

// GrammarDrill is one multiple-choice microdrill. Drills are seeded into
// the grammar_patterns table on startup so they carry SRS state like any
// other reviewable item.
type GrammarDrill struct {
	Focus       string
	Category    string
	Prompt      string
	Options     []string
	Answer      string
	Explanation string
	Examples    []string
}

// GrammarMicrodrills is the built-in drill bank
var GrammarMicrodrills = []GrammarDrill{
	{
		Focus:       "Gender agreement",
		Category:    "agreement",
		Prompt:      "Selecciona la opcion correcta: La reunion fue ___ y productiva.",
		Options:     []string{"intenso", "intensa", "intensas"},
		Answer:      "intensa",
		Explanation: "Reunion es femenino singular, por eso requiere intensa.",
		Examples:    []string{"La discusion fue intensa.", "La agenda estuvo cargada."},
	},
	{
		Focus:       "Verb tense",
		Category:    "tense",
		Prompt:      "Completa: Si ___ mas tiempo, habria terminado el informe.",
		Options:     []string{"tengo", "tenia", "tuviera"},
		Answer:      "tuviera",
		Explanation: "Condicional con si requiere imperfecto de subjuntivo.",
		Examples:    []string{"Si tuviera apoyo, lo haria.", "Si fuera posible, lo ajustamos."},
	},
	{
		Focus:       "Ser vs estar",
		Category:    "copula",
		Prompt:      "El plan ___ listo, pero los recursos aun no.",
		Options:     []string{"esta", "es", "son"},
		Answer:      "esta",
		Explanation: "Estados temporales usan estar.",
		Examples:    []string{"El equipo esta listo.", "La sala esta ocupada."},
	},
	{
		Focus:       "Preposition choice",
		Category:    "preposition",
		Prompt:      "Depende ___ la aprobacion del comite.",
		Options:     []string{"de", "en", "por"},
		Answer:      "de",
		Explanation: "El verbo depender se construye con de.",
		Examples:    []string{"Depende de ti.", "Depende del presupuesto."},
	},
	{
		Focus:       "Subjunctive trigger",
		Category:    "subjunctive",
		Prompt:      "Es importante que ___ a tiempo.",
		Options:     []string{"llegas", "llegues", "llegaste"},
		Answer:      "llegues",
		Explanation: "Es importante que + subjuntivo.",
		Examples:    []string{"Es necesario que vengas.", "Quiero que lo sepas."},
	},
	{
		Focus:       "Object pronoun placement",
		Category:    "clitic",
		Prompt:      "___ lo dije claramente.",
		Options:     []string{"Se lo", "Le lo", "Lo le"},
		Answer:      "Se lo",
		Explanation: "Le + lo se transforma en se lo.",
		Examples:    []string{"Se lo explique.", "Se lo dare manana."},
	},
	{
		Focus:       "Por vs para",
		Category:    "preposition",
		Prompt:      "Estudia mucho ___ aprobar el examen.",
		Options:     []string{"por", "para", "de"},
		Answer:      "para",
		Explanation: "Para indica proposito u objetivo.",
		Examples:    []string{"Trabajo para vivir.", "Lo hago para ayudarte."},
	},
	{
		Focus:       "Preterite vs imperfect",
		Category:    "tense",
		Prompt:      "Mientras ___ el informe, sono el telefono.",
		Options:     []string{"escribi", "escribia", "he escrito"},
		Answer:      "escribia",
		Explanation: "Imperfecto para accion de fondo interrumpida.",
		Examples:    []string{"Llovia cuando sali.", "Dormia cuando llamaste."},
	},
}
