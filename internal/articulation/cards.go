package articulation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// CardContract documents what a renderer needs for one card type. The
// registry is static data: adding a type must never change an existing
// type's shape.
type CardContract struct {
	Type        string
	Description string
	// Required lists top-level payload fields the renderer depends on.
	Required []string
	// Schema is the JSON Schema for the payload. Kept as source text and
	// compiled on first Validate call.
	Schema string
}

// objectSchema builds the schema text for a flat contract: an object with
// the given required properties. Payloads may carry extra fields; renderers
// ignore what they do not know.
func objectSchema(required ...string) string {
	s := `{"type":"object"`
	if len(required) > 0 {
		s += `,"required":[`
		for i, r := range required {
			if i > 0 {
				s += ","
			}
			s += `"` + r + `"`
		}
		s += `]`
	}
	return s + `}`
}

func contract(cardType, description string, required ...string) CardContract {
	return CardContract{
		Type:        cardType,
		Description: description,
		Required:    required,
		Schema:      objectSchema(required...),
	}
}

// cardRegistry is the closed set of card types the rendering layer knows.
// The segment parser does not consult it; it exists for renderers and for
// contract validation in tests and tooling.
var cardRegistry = map[string]CardContract{
	"task":               contract("task", "A single advisor task with action buttons", "task", "showActions"),
	"client":             contract("client", "One client profile summary", "client"),
	"client-list":        contract("client-list", "A pageable list of clients", "clients"),
	"policy":             contract("policy", "A single policy summary", "policy"),
	"policy-list":        contract("policy-list", "A list of policies for a client", "policies"),
	"chart":              contract("chart", "A rendered chart", "chartType", "series"),
	"data-table":         contract("data-table", "Tabular data with column headers", "columns", "rows"),
	"email-composer":     contract("email-composer", "A draft email open for editing", "draft"),
	"compliance-check":   contract("compliance-check", "Result of a compliance pre-check", "result"),
	"proposal":           contract("proposal", "A product proposal for review", "proposal"),
	"comparison":         contract("comparison", "A side-by-side product comparison", "items"),
	"dashboard":          contract("dashboard", "The advisor's summary dashboard", "widgets"),
	"portfolio-review":   contract("portfolio-review", "A client portfolio review", "clientId", "holdings"),
	"calendar":           contract("calendar", "Upcoming appointments", "events"),
	"document-preview":   contract("document-preview", "An inline document preview", "documentId"),
	"progress-tracker":   contract("progress-tracker", "Multi-step progress indicator", "steps"),
	"meeting-notes":      contract("meeting-notes", "Notes from a client meeting", "notes"),
	"reminder":           contract("reminder", "A scheduled reminder", "reminder"),
	"renewal-notice":     contract("renewal-notice", "An upcoming policy renewal", "policyId", "dueDate"),
	"confirmation":       contract("confirmation", "Confirmation that an action completed", "message"),
	"review":             contract("review", "An item awaiting the advisor's review", "review", "showActions"),
	"automation-list":    contract("automation-list", "Configured automations", "automations"),
	"opportunity-list":   contract("opportunity-list", "Open sales opportunities", "opportunities"),
	"opportunity-detail": contract("opportunity-detail", "One opportunity in detail", "opportunity"),
	"workflow-status":    contract("workflow-status", "Where a workflow currently stands", "workflowId", "state"),
	"timeline":           contract("timeline", "Chronological activity feed", "entries"),
	"export-download":    contract("export-download", "A prepared export ready to download", "url"),
	"select-entity":      contract("select-entity", "Disambiguation picker between entities", "options"),
	"confirm-action":     contract("confirm-action", "Yes/no confirmation prompt", "action", "prompt"),
}

var (
	schemaMu       sync.Mutex
	compiledSchema = map[string]*gojsonschema.Schema{}
)

// KnownCardType reports whether the registry documents cardType.
func KnownCardType(cardType string) bool {
	_, ok := cardRegistry[cardType]
	return ok
}

// Contract returns the registry entry for cardType.
func Contract(cardType string) (CardContract, bool) {
	c, ok := cardRegistry[cardType]
	return c, ok
}

// CardTypes returns all registered type tags, sorted.
func CardTypes() []string {
	types := make([]string, 0, len(cardRegistry))
	for t := range cardRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidateCardPayload checks a decoded payload against the card's contract.
// Unknown card types are an error here — the rendering layer calls this
// precisely to decide whether it can dispatch — but note that ParseSegments
// itself never does; unknown types flow through the parser untouched.
func ValidateCardPayload(cardType string, data map[string]any) error {
	c, ok := cardRegistry[cardType]
	if !ok {
		return fmt.Errorf("unknown card type %q", cardType)
	}

	schema, err := compiled(c)
	if err != nil {
		return fmt.Errorf("contract for %q: %w", cardType, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("validate %q payload: %w", cardType, err)
	}
	if !result.Valid() {
		errs := result.Errors()
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.String()
		}
		return fmt.Errorf("%q payload violates contract: %v", cardType, msgs)
	}
	return nil
}

func compiled(c CardContract) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := compiledSchema[c.Type]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(c.Schema))
	if err != nil {
		return nil, err
	}
	compiledSchema[c.Type] = s
	return s, nil
}
