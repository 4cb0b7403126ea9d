package eligibility

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DormKind is the gender regime inferred from a dormitory name.
type DormKind string

const (
	DormMixed  DormKind = "mixed"
	DormMale   DormKind = "male"
	DormFemale DormKind = "female"
)

// Gender is a normalized profile gender. GenderUnknown never satisfies a
// single-gender dormitory.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

//go:embed default_policy.yaml
var defaultPolicyYAML []byte

// Policy holds the marker lists used to classify dormitories and normalize
// genders.
type Policy struct {
	MixedMarkers  []string
	FemaleMarkers []string
	MaleMarkers   []string

	genders map[string]Gender
}

type yamlPolicy struct {
	Version   int `yaml:"version"`
	Dormitory struct {
		Mixed  []string `yaml:"mixed"`
		Female []string `yaml:"female"`
		Male   []string `yaml:"male"`
	} `yaml:"dormitory"`
	Gender struct {
		Male   []string `yaml:"male"`
		Female []string `yaml:"female"`
	} `yaml:"gender"`
}

// fallback used if the embedded file is ever unparsable
func fallbackPolicy() yamlPolicy {
	var p yamlPolicy
	p.Dormitory.Mixed = []string{"karma", "mixed", "co-ed", "coed"}
	p.Dormitory.Female = []string{"kız", "kiz", "kadın", "female", "women", "girls"}
	p.Dormitory.Male = []string{"erkek", "male", "boys"}
	p.Gender.Male = []string{"male", "erkek", "m"}
	p.Gender.Female = []string{"female", "kadın", "kız", "f"}
	return p
}

// DefaultPolicy returns the embedded marker set.
func DefaultPolicy() *Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		return fromYAML(fallbackPolicy())
	}
	return p
}

// LoadPolicy reads a policy file. An empty path yields DefaultPolicy.
func LoadPolicy(path string) (*Policy, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read eligibility policy %s: %w", path, err)
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("parse eligibility policy %s: %w", path, err)
	}
	return p, nil
}

func ParsePolicy(data []byte) (*Policy, error) {
	var raw yamlPolicy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Dormitory.Female) == 0 || len(raw.Dormitory.Male) == 0 {
		return nil, fmt.Errorf("dormitory.female and dormitory.male markers are required")
	}
	if len(raw.Gender.Female) == 0 || len(raw.Gender.Male) == 0 {
		return nil, fmt.Errorf("gender.female and gender.male aliases are required")
	}
	return fromYAML(raw), nil
}

func fromYAML(raw yamlPolicy) *Policy {
	p := &Policy{
		MixedMarkers:  normalizeMarkers(raw.Dormitory.Mixed),
		FemaleMarkers: normalizeMarkers(raw.Dormitory.Female),
		MaleMarkers:   normalizeMarkers(raw.Dormitory.Male),
		genders:       map[string]Gender{},
	}
	for _, alias := range normalizeMarkers(raw.Gender.Male) {
		p.genders[alias] = GenderMale
	}
	for _, alias := range normalizeMarkers(raw.Gender.Female) {
		p.genders[alias] = GenderFemale
	}
	return p
}

func normalizeMarkers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		if m = fold(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// fold lowercases s and maps the Turkish dotted capital I so that "KIZ" and
// "kız" style spellings compare the way users expect.
func fold(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "İ", "i"))
}

// Classify infers the dormitory regime from its name. Names carrying both
// or neither gender marker are treated as mixed.
func (p *Policy) Classify(dormitory string) DormKind {
	name := fold(dormitory)
	if name == "" || containsAny(name, p.MixedMarkers) {
		return DormMixed
	}
	female := containsAny(name, p.FemaleMarkers)
	// "male" is a substring of "female"; strip female markers first.
	stripped := name
	for _, m := range p.FemaleMarkers {
		stripped = strings.ReplaceAll(stripped, m, " ")
	}
	male := containsAny(stripped, p.MaleMarkers)
	switch {
	case female && !male:
		return DormFemale
	case male && !female:
		return DormMale
	}
	return DormMixed
}

func (p *Policy) NormalizeGender(raw string) Gender {
	return p.genders[fold(raw)]
}

// Allows reports whether an owner of the given gender may appear to viewers
// living in a dormitory of kind.
func (p *Policy) Allows(kind DormKind, ownerGender string) bool {
	switch kind {
	case DormMale:
		return p.NormalizeGender(ownerGender) == GenderMale
	case DormFemale:
		return p.NormalizeGender(ownerGender) == GenderFemale
	}
	return true
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
