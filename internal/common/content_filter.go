package common

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const blockedReason = "Contains harmful, misleading, or abusive content"

// blockedPhrases are matched as lower-cased substrings.
var blockedPhrases = []string{
	// fake cures
	"mms", "miracle mineral solution", "bleach", "chlorine dioxide", "cd protocol",
	"chelation cures autism", "hyperbaric oxygen cures autism", "hb ot",
	"lupron protocol", "stem cell cure", "cure autism", "recover autism",
	"autism is reversible", "detox autism", "biomedical treatment cures",
	"gaps diet cures autism", "keto cures autism",

	// anti-vaccine
	"vaccines cause autism", "vaccine injury", "mmr caused autism",
	"autism epidemic from vaccines", "andrew wakefield",

	// slurs against autistic people
	"low functioning", "high functioning", "severely autistic",
	"retard", "retarded", "autistic retard", "special needs retard",
	"burden on family", "better off dead", "should have been aborted",
	"vegetable", "not a real person", "soul-less", "possessed",

	// roman urdu insults
	"pagal", "pagal khanay ka", "deewana", "mental", "dimaghi mareez",
	"bewaqoof", "chutiya", "harami", "kanjar", "randi", "bhenchod", "madarchod",
	"ghatia", "nikamma", "nalayak", "bakwas band kar", "fuzool baatein",

	// roman urdu harmful autism phrases
	"autism ka ilaj", "autism theek ho sakta hai", "autism khatam karne ka tareeka",
	"bleach se autism theek", "vaccine ne autism diya", "teeka ne bacha bigad diya",
	"ye bacha kabhi theek nahi hoga", "is ko mar dalo", "aisi aulad se behtar abortion",
	"ye sirf pareshani hai", "ye janwar hai", "shaytan ka bacha",

	// roman urdu fake treatments
	"homeo se autism theek", "hakeem se ilaj", "dua se autism chala jayega",
	"jinnat ki wajah se autism", "nazar lag gayi is liye",
}

type FilterResult struct {
	Blocked bool
	Reason  string
}

func FilterContent(text string) FilterResult {
	lower := strings.ToLower(text)
	for _, phrase := range blockedPhrases {
		if strings.Contains(lower, phrase) {
			return FilterResult{Blocked: true, Reason: blockedReason}
		}
	}
	return FilterResult{}
}

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from user supplied text. The result stays
// HTML-escaped and is what gets stored.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// plainText decodes sanitised text for phrase matching only. Its output must
// never be stored.
func plainText(sanitized string) string {
	return html.UnescapeString(sanitized)
}
