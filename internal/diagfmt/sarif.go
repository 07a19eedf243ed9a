package diagfmt

import (
	"encoding/json"
	"io"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/source"
)

// SARIF v2.1.0, the subset GitHub code scanning and IDE importers read.
// Struct field order fixes the serialized order, so the output is
// byte-for-byte deterministic for a given bag.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string          `json:"id"`
	ShortDescription sarifMessage    `json:"shortDescription"`
	FullDescription  *sarifMessage   `json:"fullDescription,omitempty"`
	DefaultConfig    sarifRuleConfig `json:"defaultConfiguration"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex *int            `json:"ruleIndex,omitempty"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// Sarif renders the bag as one SARIF run. The registry supplies
// tool.driver.rules metadata; results for non-rule codes (lexer, parser,
// I/O) carry their code ID without a ruleIndex.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, reg *rules.Registry, meta SarifRunMeta) error {
	all := reg.All()
	sarifRules := make([]sarifRule, len(all))
	indexByName := make(map[string]int, len(all))
	for i, rule := range all {
		indexByName[rule.Name] = i
		sr := sarifRule{
			ID:               rule.Name,
			ShortDescription: sarifMessage{Text: rule.Summary},
			DefaultConfig:    sarifRuleConfig{Level: sarifLevel(rule.Severity)},
		}
		if rule.Rationale != "" {
			sr.FullDescription = &sarifMessage{Text: rule.Rationale}
		}
		sarifRules[i] = sr
	}

	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		start, end := fs.Resolve(d.Primary)
		res := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI: displayPath(fs, d.Primary.File, PathModeRelative),
					},
					Region: sarifRegion{
						StartLine:   start.Line,
						StartColumn: start.Col,
						EndLine:     end.Line,
						EndColumn:   end.Col,
					},
				},
			}},
		}
		if idx, ok := indexByName[res.RuleID]; ok {
			res.RuleIndex = &idx
		}
		results = append(results, res)
	}

	log := sarifLog{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InfoURI,
				Rules:          sarifRules,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: true,
			}},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
