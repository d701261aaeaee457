package solution

import (
	"fmt"
	"strings"

	"ucp/internal/detect"
)

// connectionAxiom names the constraint every generated solution must keep.
const connectionAxiom = "connection_maximization"

// applyConnectionAxiom rewords every recombined step toward stakeholder
// involvement and appends the domain's connection steps. Returns the
// enhanced steps and how many connection steps were added.
func (g *Generator) applyConnectionAxiom(steps []string, problem detect.DetectedProblem) ([]string, int) {
	enhanced := make([]string, 0, len(steps))
	for _, step := range steps {
		enhanced = append(enhanced, enhanceStep(step))
	}

	connection := g.templates.connectionSteps(problem.Domain)
	enhanced = append(enhanced, connection...)
	return enhanced, len(connection)
}

// enhanceStep appends a connection-focused clause keyed on the step's verb.
// First match wins: a step that both implements and deploys gets the
// implement suffix.
func enhanceStep(step string) string {
	lower := strings.ToLower(step)
	switch {
	case strings.Contains(lower, "implement"):
		return step + " with stakeholder collaboration and feedback loops"
	case strings.Contains(lower, "create"):
		return step + " ensuring cross-team visibility and shared access"
	case strings.Contains(lower, "design"):
		return step + " with input from all affected stakeholders"
	case strings.Contains(lower, "deploy"):
		return step + " with communication plan and training for all users"
	default:
		return step + " while maintaining transparency and stakeholder engagement"
	}
}

// assemblePlan wraps the enhanced steps with fixed planning and closing
// phases: three planning steps in front, five validation steps behind.
func (g *Generator) assemblePlan(enhancedSteps []string, problem detect.DetectedProblem) []string {
	plan := []string{
		fmt.Sprintf("Analyze current state of %s systems", problem.Domain),
		"Identify all stakeholders and dependencies",
		"Create detailed project plan with milestones",
	}
	plan = append(plan, enhancedSteps...)
	plan = append(plan,
		"Test solution with pilot group",
		"Collect feedback and iterate",
		"Create rollout plan for full deployment",
		"Monitor success metrics and adjust as needed",
		"Document lessons learned for pattern library",
	)
	return plan
}

// estimateResources derives resource labels from substring checks over the
// joined plan text plus length thresholds. Output keeps derivation order.
func (g *Generator) estimateResources(plan []string) []string {
	resources := []string{"development_time", "stakeholder_coordination"}

	text := strings.ToLower(strings.Join(plan, " "))
	if strings.Contains(text, "test") {
		resources = append(resources, "testing_environment")
	}
	if strings.Contains(text, "train") {
		resources = append(resources, "training_materials")
	}
	if strings.Contains(text, "monitor") {
		resources = append(resources, "monitoring_tools")
	}
	if strings.Contains(text, "deploy") {
		resources = append(resources, "deployment_infrastructure")
	}
	if strings.Contains(text, "document") {
		resources = append(resources, "documentation_effort")
	}

	if len(plan) > 8 {
		resources = append(resources, "project_management")
	}
	if len(plan) > 12 {
		resources = append(resources, "dedicated_team")
	}
	return resources
}

// successMetrics builds the metric list: resolution and axiom lines,
// per-domain template metrics, then connection metrics when any
// connections were enhanced.
func (g *Generator) successMetrics(problem detect.DetectedProblem, connections int) []string {
	desc := problem.Description
	if len(desc) > 50 {
		desc = desc[:50]
	}
	metrics := []string{
		fmt.Sprintf("Problem '%s...' resolved", desc),
		fmt.Sprintf("Solution maintains %s principle", connectionAxiom),
	}
	metrics = append(metrics, g.templates.metrics(problem.Domain)...)

	if connections > 0 {
		metrics = append(metrics,
			fmt.Sprintf("Stakeholder connections increased by %d", connections),
			"Inter-team collaboration improved",
		)
	}
	return metrics
}

// identifyRisks flags risks from substring checks over the plan text plus
// the domain's canned risks.
func (g *Generator) identifyRisks(plan []string, problem detect.DetectedProblem) []string {
	risks := []string{"Implementation complexity higher than estimated"}

	text := strings.ToLower(strings.Join(plan, " "))
	if strings.Contains(text, "pilot") {
		risks = append(risks, "Pilot results may not scale to full deployment")
	}
	if strings.Contains(text, "stakeholder") {
		risks = append(risks, "Stakeholder resistance or misalignment")
	}
	if strings.Contains(text, "new") || strings.Contains(text, "novel") {
		risks = append(risks, "Unproven approach with unknown edge cases")
	}
	if strings.Contains(text, "integrate") {
		risks = append(risks, "Integration challenges with existing systems")
	}

	return append(risks, g.templates.risks(problem.Domain)...)
}
