// Package voice maps abstract speaker slots to provider-native voice
// descriptors. Resolution is a pure function of its inputs; the tables below
// are the only state.
package voice

import "strings"

// Descriptor identifies a concrete provider voice. Providers that take a bare
// voice name leave LanguageCode empty; structured providers fill both fields.
type Descriptor struct {
	Name         string `json:"name"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// CatalogEntry describes one selectable voice for UI population.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// family is one provider family's voice table: an ordered slot mapping, a
// declared default used for out-of-range slots, and the display catalog.
type family struct {
	slots      []Descriptor
	fallback   Descriptor
	structured bool
	language   string
	catalog    []CatalogEntry
}

var openaiSlots = []Descriptor{
	{Name: "alloy"},
	{Name: "echo"},
	{Name: "fable"},
	{Name: "onyx"},
	{Name: "nova"},
	{Name: "shimmer"},
}

var openaiCatalog = []CatalogEntry{
	{ID: "alloy", Name: "Alloy", Description: "Neutral, balanced voice"},
	{ID: "echo", Name: "Echo", Description: "Male, clear voice"},
	{ID: "fable", Name: "Fable", Description: "British, expressive voice"},
	{ID: "onyx", Name: "Onyx", Description: "Deep, authoritative voice"},
	{ID: "nova", Name: "Nova", Description: "Female, energetic voice"},
	{ID: "shimmer", Name: "Shimmer", Description: "Female, soft voice"},
}

var families = map[string]family{
	"openai": {
		slots:    openaiSlots,
		fallback: openaiSlots[0],
		catalog:  openaiCatalog,
	},
	// Azure serves the OpenAI-compatible voice set.
	"azure": {
		slots:    openaiSlots,
		fallback: openaiSlots[0],
		catalog:  openaiCatalog,
	},
	"vertex_ai": {
		slots: []Descriptor{
			{Name: "en-US-Studio-O", LanguageCode: "en-US"},
			{Name: "en-US-Studio-M", LanguageCode: "en-US"},
			{Name: "en-UK-Studio-A", LanguageCode: "en-UK"},
			{Name: "en-UK-Studio-B", LanguageCode: "en-UK"},
			{Name: "en-AU-Studio-A", LanguageCode: "en-AU"},
			{Name: "en-AU-Studio-B", LanguageCode: "en-AU"},
		},
		fallback:   Descriptor{Name: "en-US-Studio-O", LanguageCode: "en-US"},
		structured: true,
		language:   "en-US",
		catalog: []CatalogEntry{
			{ID: "en-US-Studio-O", Name: "US Studio O", Description: "US English neutral voice"},
			{ID: "en-US-Studio-M", Name: "US Studio M", Description: "US English male voice"},
			{ID: "en-UK-Studio-A", Name: "UK Studio A", Description: "UK English voice A"},
			{ID: "en-UK-Studio-B", Name: "UK Studio B", Description: "UK English voice B"},
			{ID: "en-AU-Studio-A", Name: "AU Studio A", Description: "Australian English voice A"},
			{ID: "en-AU-Studio-B", Name: "AU Studio B", Description: "Australian English voice B"},
		},
	},
	// Kokoro voices, https://huggingface.co/hexgrad/Kokoro-82M/tree/main/voices.
	// Its declared default is af_heart, which is not a slot entry.
	"local": {
		slots: []Descriptor{
			{Name: "am_adam"},
			{Name: "af_bella"},
		},
		fallback: Descriptor{Name: "af_heart"},
		catalog: []CatalogEntry{
			{ID: "am_adam", Name: "Adam (Male)", Description: "American English male voice"},
			{ID: "af_bella", Name: "Bella (Female)", Description: "American English female voice"},
			{ID: "af_heart", Name: "Heart (Female)", Description: "American English female voice (warm)"},
			{ID: "af_sarah", Name: "Sarah (Female)", Description: "American English female voice"},
			{ID: "am_michael", Name: "Michael (Male)", Description: "American English male voice"},
			{ID: "bf_emma", Name: "Emma (Female)", Description: "British English female voice"},
			{ID: "bm_george", Name: "George (Male)", Description: "British English male voice"},
		},
	},
}

// Family extracts the provider family from an identifier like "openai/tts-1".
// An identifier with no "/" is the family itself. Matching is case-insensitive.
func Family(providerID string) string {
	fam := providerID
	if idx := strings.Index(providerID, "/"); idx >= 0 {
		fam = providerID[:idx]
	}
	return strings.ToLower(fam)
}

// Resolve maps (provider, speaker slot, optional override) to a Descriptor.
// An override is taken verbatim as the voice name; structured families still
// attach their default language code. Slots outside the family table fall
// back to the family default, unknown families to an empty descriptor.
func Resolve(providerID string, speakerSlot int, override string) Descriptor {
	fam, known := families[Family(providerID)]

	if override != "" {
		d := Descriptor{Name: override}
		if known && fam.structured {
			d.LanguageCode = fam.language
		}
		return d
	}

	if !known {
		return Descriptor{}
	}
	if speakerSlot < 0 || speakerSlot >= len(fam.slots) {
		return fam.fallback
	}
	return fam.slots[speakerSlot]
}

// ListVoices returns the display catalog for a provider in fixed order.
// Unrecognized families yield an empty catalog.
func ListVoices(providerID string) []CatalogEntry {
	fam, known := families[Family(providerID)]
	if !known {
		return []CatalogEntry{}
	}
	out := make([]CatalogEntry, len(fam.catalog))
	copy(out, fam.catalog)
	return out
}
