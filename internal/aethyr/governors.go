package aethyr

import (
	"sort"
	"strings"

	"github.com/enochian/lighthouse/internal/canon"
	"github.com/enochian/lighthouse/pkg/models"
)

// sacredGovernorNames is the canonical 91-name set, standing in for the
// governors/<NAME>.json on-disk set the spec describes (spec.md §6). Names
// are assigned to Aethyrs by canonical (case-insensitive lexicographic)
// order, never by file-load order, per spec.md §4.4.
var sacredGovernorNames = [91]string{
	"ABRIOND", "ADONDOTH", "ADWIXOL", "ALARXOMA", "ALDISIN", "ALORPARPH", "AMPLOOND",
	"ANIASOTH", "ANNADAS", "ANZIROMA", "ARNASIN", "ARSAXAN", "AVCASAN", "AXLONIX",
	"BATANARPH", "BAZIRIN", "BEIASAS", "CHHOLIEL", "DIORPARPH", "DOONDIS", "DOORPAX",
	"ELDISOS", "ELSAXETH", "EMEXAX", "EMYOSIX", "ENOTHEL", "ERGAROL", "ERZIRIEL",
	"ESAMPOZ", "ESEXIS", "ESNADIN", "GONASOZ", "GOWIXOS", "HAMEPIEL", "ICHNADOND",
	"ICHQUIAX", "ICHYOSOS", "LAROSOL", "LAYOSIX", "LEVONOL", "LEXARPH", "LINADES",
	"LOURIARPH", "LOVONATH", "MEAMPETH", "MEGARIN", "NAPAXOND", "NEMEPATH", "NEROSAN",
	"NEROSIN", "NOFANIA", "NOMANIX", "OCHOLOMA", "OCIASIEL", "OCOTHARPH", "OCXANAP",
	"ODIASIN", "ODPAXAPH", "ODTANON", "OPMANOS", "ORPLOAN", "PAOTHOL", "PEQUIETH",
	"POZIREL", "RALONAX", "RAURIIX", "RAXANIA", "SAPLOOTH", "SAYOSIN", "SAZIROZ",
	"SOONDAR", "SOPLOAPH", "TALONARPH", "TAOTHOL", "TEIASARPH", "TENASES", "TIMANAP",
	"TINADIS", "TOMANAPH", "TOPAXAX", "VAEXIN", "VAPAXES", "VEQUIUM", "VIOTHAPH",
	"VOBRIIEL", "ZANASIA", "ZAROSAS", "ZIHOLIX", "ZIQUIOZ", "ZOCASATH", "ZUZIROL",
}

// domainCycle assigns each governor a domain deterministically from the
// closed Domain enum, cycling by the governor's canonical rank. Affinity
// vectors are derived from the same rank so the whole table is a pure
// function of the canonical name ordering, with no randomness or
// load-order dependence.
var domainCycle = models.AllDomains

// BuildGovernors constructs the fixed 91-governor table: governors ordered
// by canonical name (case-insensitive lexicographic), TEX filled first
// with the first 4, then Aethyrs 2..30 each receiving the next 3 in order
// (spec.md §4.4).
func BuildGovernors() [91]models.Governor {
	names := make([]string, len(sacredGovernorNames))
	copy(names, sacredGovernorNames[:])
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	aethyrs := BuildAethyrs()

	var out [91]models.Governor
	idx := 0
	governorID := 1
	for _, a := range aethyrs {
		count := a.GovernorCount()
		for p := 0; p < count; p++ {
			name := names[idx]
			out[idx] = models.Governor{
				GovernorID: governorID,
				Name:       name,
				AethyrID:   a.AethyrID,
				Domain:     domainCycle[idx%len(domainCycle)],
				Affinity:   affinityFor(name),
			}
			idx++
			governorID++
		}
	}
	return out
}

// affinityFor derives a deterministic per-tradition affinity vector
// (fixed-point, denom 1e6) from the governor's canonical name, so the
// table needs no external load step to be internally consistent. Real
// deployments overwrite this from governors/<NAME>.json at load time;
// this is the fallback used when no on-disk profile exists.
func affinityFor(name string) map[models.Tradition]int64 {
	out := make(map[models.Tradition]int64, len(models.AllTraditions))
	for i, t := range models.AllTraditions {
		h := canon.HashStrings(name, string(t))
		// Use the first 6 hex chars (24 bits) of the digest as a stable
		// pseudo-random affinity in [400000, 1000000) fixed-point.
		v := hexToUint32(h[:6])
		affinity := int64(400_000) + int64(v%600_000)
		if t == models.TraditionEnochian {
			// Governors are Enochian entities first; floor their own
			// tradition's affinity high regardless of hash noise.
			affinity = canon.MaxFixed(affinity, 900_000)
		}
		out[t] = affinity
		_ = i
	}
	return out
}

func hexToUint32(h string) uint32 {
	var v uint32
	for _, c := range h {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		}
	}
	return v
}
