package content

// VerbForm is one seed conjugation. Seeded into verb_conjugations on
// startup so every form carries SRS state like the other reviewable kinds.
type VerbForm struct {
	Infinitive string
	Meaning    string
	Tense      string
	Person     string
	Form       string
	Irregular  bool
}

// VerbSeed is the built-in conjugation bank: high-frequency irregulars
// plus one regular model verb per conjugation class.
var VerbSeed = []VerbForm{
	{Infinitive: "hablar", Meaning: "to speak", Tense: "presente", Person: "yo", Form: "hablo"},
	{Infinitive: "hablar", Meaning: "to speak", Tense: "indefinido", Person: "nosotros", Form: "hablamos"},
	{Infinitive: "hablar", Meaning: "to speak", Tense: "subjuntivo presente", Person: "yo", Form: "hable"},
	{Infinitive: "comer", Meaning: "to eat", Tense: "presente", Person: "nosotros", Form: "comemos"},
	{Infinitive: "comer", Meaning: "to eat", Tense: "indefinido", Person: "el", Form: "comio"},
	{Infinitive: "vivir", Meaning: "to live", Tense: "presente", Person: "ellos", Form: "viven"},
	{Infinitive: "vivir", Meaning: "to live", Tense: "indefinido", Person: "yo", Form: "vivi"},

	{Infinitive: "ser", Meaning: "to be (essence)", Tense: "presente", Person: "yo", Form: "soy", Irregular: true},
	{Infinitive: "ser", Meaning: "to be (essence)", Tense: "indefinido", Person: "el", Form: "fue", Irregular: true},
	{Infinitive: "ser", Meaning: "to be (essence)", Tense: "subjuntivo presente", Person: "yo", Form: "sea", Irregular: true},
	{Infinitive: "estar", Meaning: "to be (state)", Tense: "presente", Person: "tu", Form: "estas", Irregular: true},
	{Infinitive: "estar", Meaning: "to be (state)", Tense: "indefinido", Person: "yo", Form: "estuve", Irregular: true},
	{Infinitive: "tener", Meaning: "to have", Tense: "presente", Person: "yo", Form: "tengo", Irregular: true},
	{Infinitive: "tener", Meaning: "to have", Tense: "indefinido", Person: "el", Form: "tuvo", Irregular: true},
	{Infinitive: "tener", Meaning: "to have", Tense: "subjuntivo presente", Person: "yo", Form: "tenga", Irregular: true},
	{Infinitive: "ir", Meaning: "to go", Tense: "presente", Person: "yo", Form: "voy", Irregular: true},
	{Infinitive: "ir", Meaning: "to go", Tense: "indefinido", Person: "nosotros", Form: "fuimos", Irregular: true},
	{Infinitive: "ir", Meaning: "to go", Tense: "subjuntivo presente", Person: "yo", Form: "vaya", Irregular: true},
	{Infinitive: "poder", Meaning: "to be able to", Tense: "presente", Person: "yo", Form: "puedo", Irregular: true},
	{Infinitive: "poder", Meaning: "to be able to", Tense: "indefinido", Person: "yo", Form: "pude", Irregular: true},
	{Infinitive: "hacer", Meaning: "to do, to make", Tense: "presente", Person: "yo", Form: "hago", Irregular: true},
	{Infinitive: "hacer", Meaning: "to do, to make", Tense: "indefinido", Person: "el", Form: "hizo", Irregular: true},
	{Infinitive: "decir", Meaning: "to say", Tense: "presente", Person: "yo", Form: "digo", Irregular: true},
	{Infinitive: "decir", Meaning: "to say", Tense: "subjuntivo presente", Person: "yo", Form: "diga", Irregular: true},
}
