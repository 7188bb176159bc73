package models

// Tradition is one of the 26 closed-enum bodies of source material
// indexing KnowledgeEntries. "natal_astrology" and "astrology" are
// treated as distinct traditions per spec.md §9 (the source's
// ambiguity between alias and distinct tradition is resolved in favor
// of "distinct", matching the canonical multiplier table in §6).
type Tradition string

const (
	TraditionEnochian         Tradition = "enochian"
	TraditionHermeticQabalah  Tradition = "hermetic_qabalah"
	TraditionGnosticism       Tradition = "gnosticism"
	TraditionThelema          Tradition = "thelema"
	TraditionGoldenDawn       Tradition = "golden_dawn"
	TraditionSacredGeometry   Tradition = "sacred_geometry"
	TraditionAlchemy          Tradition = "alchemy"
	TraditionSufism           Tradition = "sufism"
	TraditionTaoism           Tradition = "taoism"
	TraditionChaosMagic       Tradition = "chaos_magic"
	TraditionKabbalah         Tradition = "kabbalah"
	TraditionIChing           Tradition = "i_ching"
	TraditionTarot            Tradition = "tarot"
	TraditionAstrology        Tradition = "astrology"
	TraditionNorse            Tradition = "norse_traditions"
	TraditionCelticDruidic    Tradition = "celtic_druidic"
	TraditionEgyptianMagic    Tradition = "egyptian_magic"
	TraditionShamanism        Tradition = "shamanism"
	TraditionNumerology       Tradition = "numerology"
	TraditionQuantumPhysics   Tradition = "quantum_physics"
	TraditionKujiKiri         Tradition = "kuji_kiri"
	TraditionGreekMythology   Tradition = "greek_mythology"
	TraditionGreekPhilosophy  Tradition = "greek_philosophy"
	TraditionDigitalPhysics   Tradition = "digital_physics"
	TraditionMTheory          Tradition = "m_theory"
	TraditionNatalAstrology   Tradition = "natal_astrology"
)

// AllTraditions enumerates the 26-tradition closed set in a stable order.
// Used by IsValidTradition and by the aethyr package's per-tradition
// affinity table.
var AllTraditions = []Tradition{
	TraditionEnochian, TraditionHermeticQabalah, TraditionGnosticism,
	TraditionThelema, TraditionGoldenDawn, TraditionSacredGeometry,
	TraditionAlchemy, TraditionSufism, TraditionTaoism, TraditionChaosMagic,
	TraditionKabbalah, TraditionIChing, TraditionTarot, TraditionAstrology,
	TraditionNorse, TraditionCelticDruidic, TraditionEgyptianMagic,
	TraditionShamanism, TraditionNumerology, TraditionQuantumPhysics,
	TraditionKujiKiri, TraditionGreekMythology, TraditionGreekPhilosophy,
	TraditionDigitalPhysics, TraditionMTheory, TraditionNatalAstrology,
}

// IsValidTradition reports whether t is one of the 26 closed enum values.
// Unknown values are rejected at load time per spec.md §9 (tagged records
// with closed enums replace dynamic dict shapes).
func IsValidTradition(t Tradition) bool {
	for _, v := range AllTraditions {
		if v == t {
			return true
		}
	}
	return false
}

// TraditionMultiplierFixed is the canonical tradition-multiplier table
// from spec.md §6, fixed-point with denominator 1000. Traditions not
// present contribute 1000 (multiplier 1.0).
var TraditionMultiplierFixed = map[Tradition]int64{
	TraditionEnochian:        1300,
	TraditionHermeticQabalah: 1200,
	TraditionGnosticism:      1200,
	TraditionThelema:         1150,
	TraditionGoldenDawn:      1100,
	TraditionSacredGeometry:  1100,
	TraditionAlchemy:         1100,
	TraditionSufism:          1050,
	TraditionTaoism:          1050,
	TraditionChaosMagic:      1050,
	TraditionKabbalah:        1000,
	TraditionIChing:          1000,
	TraditionTarot:           1000,
	TraditionAstrology:       1000,
	TraditionNorse:           1000,
	TraditionCelticDruidic:   1000,
	TraditionEgyptianMagic:   1000,
	TraditionShamanism:       1000,
	TraditionNumerology:      1000,
	TraditionQuantumPhysics:  1000,
	TraditionKujiKiri:        1000,
	TraditionGreekMythology:  1000,
	TraditionGreekPhilosophy: 1000,
	TraditionDigitalPhysics:  1000,
	TraditionMTheory:         1000,
	TraditionNatalAstrology:  1000,
}

// TraditionMultiplier returns the fixed-point multiplier (denom 1000) for
// t, defaulting to 1000 for any tradition absent from the table.
func TraditionMultiplier(t Tradition) int64 {
	if m, ok := TraditionMultiplierFixed[t]; ok {
		return m
	}
	return 1000
}

// Category is the closed enum of KnowledgeEntry categories.
type Category string

const (
	CategoryPrinciple Category = "principle"
	CategoryPractice  Category = "practice"
	CategoryConcept   Category = "concept"
	CategorySymbol    Category = "symbol"
	CategoryTool      Category = "tool"
)

// Domain is the closed enum of Governor domains.
type Domain string

const (
	DomainKnowledge      Domain = "knowledge"
	DomainProtection     Domain = "protection"
	DomainTransformation Domain = "transformation"
	DomainDivination     Domain = "divination"
	DomainHealing        Domain = "healing"
	DomainCreation       Domain = "creation"
	DomainDestruction    Domain = "destruction"
	DomainCommunication  Domain = "communication"
)

// AllDomains enumerates the closed Domain set.
var AllDomains = []Domain{
	DomainKnowledge, DomainProtection, DomainTransformation, DomainDivination,
	DomainHealing, DomainCreation, DomainDestruction, DomainCommunication,
}
