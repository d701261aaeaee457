package solution

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// planTemplates holds the canned plan fragments per domain.
type planTemplates struct {
	NovelPlans            map[string][]string `yaml:"novel_plans"`
	DefaultPlan           []string            `yaml:"default_plan"`
	ConnectionBaseSteps   []string            `yaml:"connection_base_steps"`
	ConnectionDomainSteps map[string][]string `yaml:"connection_domain_steps"`
	DomainMetrics         map[string][]string `yaml:"domain_metrics"`
	DefaultMetrics        []string            `yaml:"default_metrics"`
	DomainRisks           map[string][]string `yaml:"domain_risks"`
}

var (
	templatesOnce sync.Once
	templates     *planTemplates
	templatesErr  error
)

func loadTemplates() *planTemplates {
	templatesOnce.Do(func() {
		var t planTemplates
		if err := yaml.Unmarshal(templatesYAML, &t); err != nil {
			templatesErr = err
			return
		}
		templates = &t
	})
	if templatesErr != nil {
		panic(fmt.Sprintf("load templates.yaml: %v", templatesErr))
	}
	return templates
}

func (t *planTemplates) novelPlan(domain string) []string {
	if plan, ok := t.NovelPlans[domain]; ok {
		return append([]string(nil), plan...)
	}
	return append([]string(nil), t.DefaultPlan...)
}

func (t *planTemplates) connectionSteps(domain string) []string {
	steps := append([]string(nil), t.ConnectionBaseSteps...)
	return append(steps, t.ConnectionDomainSteps[domain]...)
}

func (t *planTemplates) metrics(domain string) []string {
	if m, ok := t.DomainMetrics[domain]; ok {
		return append([]string(nil), m...)
	}
	return append([]string(nil), t.DefaultMetrics...)
}

func (t *planTemplates) risks(domain string) []string {
	return append([]string(nil), t.DomainRisks[domain]...)
}
