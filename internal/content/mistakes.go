// Package content holds the static Spanish course material: vocabulary
// units, grammar microdrills, mistake rules, conversation scenarios and
// mission templates. It is data, not logic; the evaluating code lives in
// the packages that consume it.
package content

// MistakeRule is one entry of the rule table used by the mistake detector.
// Pattern is matched as a literal substring unless Regex is set, in which
// case it is compiled and matched as a regular expression. Rules are
// evaluated in order against lowercased text.
type MistakeRule struct {
	Pattern     string
	Regex       bool
	Unless      string // anchored regex; if the text right after a match matches, skip it
	Correction  string
	Tag         string
	Explanation string
	Examples    []string
}

// CommonMistakes are literal-substring rules for frequent learner errors
var CommonMistakes = []MistakeRule{
	{
		Pattern:     "dependen en",
		Correction:  "dependen de",
		Tag:         "preposition",
		Explanation: "El verbo depender siempre va con de.",
		Examples:    []string{"Depende de la aprobacion.", "Dependemos de su respuesta."},
	},
	{
		Pattern:     "tomar una decision en",
		Correction:  "tomar una decision sobre",
		Tag:         "preposition",
		Explanation: "En espanol, tomar una decision sobre un tema es mas natural.",
		Examples:    []string{"Tomamos una decision sobre el presupuesto.", "Tomo una decision sobre el contrato."},
	},
	{
		Pattern:     "la problema",
		Correction:  "el problema",
		Tag:         "gender",
		Explanation: "Problema es masculino pese a terminar en -a.",
		Examples:    []string{"El problema fue resuelto.", "El problema persiste."},
	},
	{
		Pattern:     "la sistema",
		Correction:  "el sistema",
		Tag:         "gender",
		Explanation: "Palabras en -ma de origen griego son masculinas: el sistema, el tema, el idioma.",
		Examples:    []string{"El sistema operativo.", "El sistema nervioso."},
	},
	{
		Pattern:     "la idioma",
		Correction:  "el idioma",
		Tag:         "gender",
		Explanation: "Idioma es masculino pese a terminar en -a.",
		Examples:    []string{"El idioma espanol.", "El idioma oficial."},
	},
	{
		Pattern:     "el mano",
		Correction:  "la mano",
		Tag:         "gender",
		Explanation: "Mano es femenino aunque termine en -o. Similar: la foto, la moto, la radio.",
		Examples:    []string{"La mano derecha.", "Dame la mano."},
	},
	{
		Pattern:     "aplicar para",
		Correction:  "solicitar / presentarse a",
		Tag:         "calque",
		Explanation: "Aplicar para es un calco del ingles apply for.",
		Examples:    []string{"Solicite el puesto.", "Me presente a la convocatoria."},
	},
	{
		Pattern:     "estoy excitado",
		Correction:  "estoy emocionado / entusiasmado",
		Tag:         "false_friend",
		Explanation: "Excitado tiene connotacion sexual en espanol.",
		Examples:    []string{"Estoy muy emocionado.", "Me entusiasma la idea."},
	},
	{
		Pattern:     "soy de acuerdo",
		Correction:  "estoy de acuerdo",
		Tag:         "copula",
		Explanation: "Estar de acuerdo es la expresion correcta.",
		Examples:    []string{"Estoy de acuerdo contigo.", "Estamos de acuerdo en eso."},
	},
	{
		Pattern:     "realizar que",
		Correction:  "darse cuenta de que",
		Tag:         "false_friend",
		Explanation: "Realizar significa llevar a cabo, no darse cuenta (realize).",
		Examples:    []string{"Me di cuenta del error.", "Realizamos el proyecto."},
	},
}

// GrammarRules are regex rules for agreement and copula slips that need
// more context than a literal substring
var GrammarRules = []MistakeRule{
	{
		Pattern:     `\bmucho gente\b`,
		Regex:       true,
		Correction:  "mucha gente",
		Tag:         "gender",
		Explanation: "Gente es femenino.",
	},
	{
		Pattern:     `\bel agua frio\b`,
		Regex:       true,
		Correction:  "el agua fria",
		Tag:         "gender",
		Explanation: "Agua es femenino; usa el por fonetica, pero el adjetivo concuerda en femenino.",
	},
	{
		Pattern:     `\bes muy cansado\b`,
		Regex:       true,
		Correction:  "esta muy cansado",
		Tag:         "copula",
		Explanation: "Estados temporales usan estar.",
	},
	{
		Pattern:     `\besta bueno\b`,
		Regex:       true,
		Unless:      `^\s+que\b`, // "esta bueno que" + subjunctive is fine
		Correction:  "es bueno",
		Tag:         "copula",
		Explanation: "Cualidades inherentes usan ser.",
	},
}
