package models

// VerificationClass classifies how a SourceCitation was authenticated.
type VerificationClass string

const (
	VerificationPrimaryMS              VerificationClass = "primary_ms"
	VerificationScholarlyTranslation    VerificationClass = "scholarly_translation"
	VerificationDocumentedTradition    VerificationClass = "documented_tradition"
	VerificationHistoricalPublication  VerificationClass = "historical_publication"
	VerificationManuscriptComparison   VerificationClass = "manuscript_comparison"
)

// SourceCitation is an immutable primary-source reference loaded once at
// startup into the Source Registry.
type SourceCitation struct {
	SourceID          string             `json:"sourceId"`
	Title             string             `json:"title"`
	Author            string             `json:"author"`
	Year              *int               `json:"year,omitempty"`
	AuthenticityWeight int64             `json:"authenticityWeight"` // fixed-point, denom 1e6, range [0,1e6]
	VerificationClass VerificationClass `json:"verificationClass"`
	Digest            string             `json:"digest"` // stable hash of the citation record
}
