package internal

type DocumentStatus string

const (
	StatusInForce       DocumentStatus = "in_force"
	StatusAmended       DocumentStatus = "amended"
	StatusRepealed      DocumentStatus = "repealed"
	StatusNotYetInForce DocumentStatus = "not_yet_in_force"
)

// DocumentDescriptor identifies one document in the register. Supplied by
// the caller per document, never derived from the markup.
type DocumentDescriptor struct {
	ID        string
	Title     string
	Year      int
	SourceURL string
	Status    DocumentStatus
}

// VersionMeta carries the compilation-level metadata the register reports
// for a specific version of a document. All fields are optional.
type VersionMeta struct {
	RegisterID         *string
	CompilationNo      *string
	Status             *string
	StartDate          *string
	RetrospectiveStart *string
	MakingDate         *string
}

// Heading is one structural marker found in the markup. Start and End are
// byte offsets of the full matched marker within the raw document.
type Heading struct {
	Class string
	Level int
	Text  string
	Start int
	End   int
}

// StructuralContext is the (part, division) pair in force at a document
// position. Both fields empty means no context heading has been seen yet.
type StructuralContext struct {
	Part     string
	Division string
}

func (c StructuralContext) Label() string {
	switch {
	case c.Part != "" && c.Division != "":
		return c.Part + " > " + c.Division
	case c.Part != "":
		return c.Part
	default:
		return c.Division
	}
}

// Section is the span headed by a section-level heading. BodyStart/BodyEnd
// delimit the body within the raw markup: from the end of the section's own
// marker to the start of the next marker of any level.
type Section struct {
	Number    string
	Title     string
	BodyStart int
	BodyEnd   int
	Context   StructuralContext
	Position  int
}

type Provision struct {
	Ref     string `json:"provision_ref"`
	Chapter string `json:"chapter,omitempty"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Definition struct {
	Term            string `json:"term"`
	Definition      string `json:"definition"`
	SourceProvision string `json:"source_provision,omitempty"`
}

// Act is the normalized record produced for one document.
type Act struct {
	ID                    string         `json:"id"`
	Type                  string         `json:"type"`
	Title                 string         `json:"title"`
	TitleInSourceLanguage string         `json:"title_in_source_language"`
	ShortName             string         `json:"short_name"`
	Status                DocumentStatus `json:"status"`
	IssuedDate            string         `json:"issued_date"`
	InForceDate           string         `json:"in_force_date"`
	SourceURL             string         `json:"source_url"`
	Description           string         `json:"description"`
	Provisions            []Provision    `json:"provisions"`
	Definitions           []Definition   `json:"definitions"`
}

// DocumentRow is the stored form of a document header.
type DocumentRow struct {
	ID          string
	Type        string
	Title       string
	ShortName   string
	Status      string
	IssuedDate  string
	InForceDate string
	SourceURL   string
	Description string
}

// SyncResult reports the outcome of ingesting one document. Status is "ok"
// or a fetch failure class; failed documents carry zero counts.
type SyncResult struct {
	DocumentID  string
	Status      string
	Provisions  int
	Definitions int
}
