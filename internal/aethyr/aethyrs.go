// Package aethyr implements the Aethyr Map (AM) and Governor Registry (GR):
// the fixed 30-Aethyr list (TEX=4, all others=3) and the 91-governor table,
// built by the canonical name-ordered distribution rule (spec.md §4.4).
package aethyr

import "github.com/enochian/lighthouse/pkg/models"

// sacredAethyrNames is the canonical 30-Aethyr name list, TEX first. Per
// spec.md §9, the source's two divergent aethyr name lists (one containing
// a duplicate) are not reproduced here; this fixed list has exactly 30
// distinct entries and stands in for the canonical aethyrs.json the spec
// says implementers SHALL load.
var sacredAethyrNames = [30]string{
	"TEX", "ARN", "ZOM", "PAZ", "LIT", "MAZ", "DEO", "ZID", "ZIP", "ZAX",
	"ICH", "LOE", "ZIM", "UTI", "OXO", "LEA", "TAN", "ZEN", "POP", "CHR",
	"ASP", "LIN", "TOR", "NIA", "VTI", "ZAA", "BAG", "RII", "KHR", "LIL",
}

var elements = []string{"Fire", "Water", "Air", "Earth", "Spirit"}
var planets = []string{"Saturn", "Jupiter", "Mars", "Sun", "Venus", "Mercury", "Moon"}
var sephiroth = []string{
	"Kether", "Chokmah", "Binah", "Chesed", "Geburah",
	"Tiphareth", "Netzach", "Hod", "Yesod", "Malkuth",
}
var majorArcana = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	"Strength", "The Hermit", "Wheel of Fortune", "Justice",
	"The Hanged Man", "Death", "Temperance", "The Devil",
	"The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

// GovernorCountFor returns 4 for TEX (tier 1), 3 for every other Aethyr.
func GovernorCountFor(tier int) int {
	if tier == 1 {
		return 4
	}
	return 3
}

// BuildAethyrs constructs the fixed, ordered 30-Aethyr list with its
// correspondence cycle, matching aethyr_mapping_system.py's elemental,
// planetary, sephirotic, tarot, and I-Ching correspondence generators.
func BuildAethyrs() [30]models.Aethyr {
	var out [30]models.Aethyr
	for i, name := range sacredAethyrNames {
		tier := i + 1
		out[i] = models.Aethyr{
			AethyrID:            tier,
			Name:                name,
			Tier:                tier,
			Element:             elements[(tier-1)%len(elements)],
			PlanetaryInfluence:  planets[(tier-1)%len(planets)],
			SephiroticPath:      sephiroth[(tier-1)%len(sephiroth)],
			TarotCorrespondence: majorArcana[(tier-1)%len(majorArcana)],
			IChingHexagram:      ((tier-1)%64 + 1),
		}
	}
	return out
}
