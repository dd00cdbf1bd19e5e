package content

// RegisterMarkers groups the lexical markers counted by the register
// scorer. Keys: politeness, hedging, direct, idiomatic, academic, whatsapp.
var RegisterMarkers = map[string][]string{
	"politeness": {"por favor", "le agradeceria", "quisiera", "seria posible", "disculpe", "perdone"},
	"hedging":    {"quiza", "tal vez", "podria", "seria", "me parece", "a mi modo de ver", "diria que"},
	"direct":     {"necesito", "exijo", "debe", "quiero", "hay que", "tiene que"},
	"idiomatic":  {"me da la impresion", "en pocas palabras", "a fin de cuentas", "de hecho", "por cierto"},
	"academic":   {"objetivo", "metodologia", "resultados", "conclusion", "se analiza", "cabe destacar"},
	"whatsapp":   {"jaja", "que tal", "oye", "vale", "ok", "genial", "bueno"},
}

// ConcessiveMarkers signal a concession clause
var ConcessiveMarkers = []string{"aunque", "si bien", "a pesar de", "pese a"}

// PreciseVerbs is the bank of precise verbs several constraints ask for
var PreciseVerbs = []string{"afrontar", "plantear", "desactivar", "sopesar", "tramitar", "aportar"}

// FormalMarkers signal usted-register writing
var FormalMarkers = []string{"usted", "le ", "les ", "le agradeceria", "seria posible"}

// EnglishCalques are anglicisms a careful writer should avoid
var EnglishCalques = []string{"aplicar para", "realizar que", "soportar como apoyo"}

// CommonEnglishWords is a small stoplist used to flag turns written in
// English instead of Spanish.
var CommonEnglishWords = []string{
	"the", "and", "you", "that", "with", "this", "have", "from",
	"they", "would", "there", "their", "what", "about", "which",
}
