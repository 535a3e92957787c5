// Package switcher decides and performs layout switches.
package switcher

import "github.com/jmylchreest/dpswitch/internal/model"

// Plan is the set of actions needed to move from the active outputs to a layout.
type Plan struct {
	// ToApply holds every setting of the layout in file order. Settings are
	// re-applied even when the display is already active.
	ToApply []model.DisplaySetting

	// ToDisable holds active ports that the layout does not mention, in the
	// order xrandr reported them.
	ToDisable []string

	primary    string
	hasPrimary bool
}

// Primary returns the port to mark primary, if the layout names one.
// When several settings are marked primary the last one wins.
func (p Plan) Primary() (string, bool) {
	return p.primary, p.hasPrimary
}

// Decide computes the plan for switching to layout given the active ports.
func Decide(active []string, layout model.Layout) Plan {
	plan := Plan{
		ToApply: make([]model.DisplaySetting, len(layout.Settings)),
	}
	copy(plan.ToApply, layout.Settings)

	wanted := make(map[string]bool, len(layout.Settings))
	for _, s := range layout.Settings {
		wanted[s.Port()] = true
		if s.Primary {
			plan.primary = s.Port()
			plan.hasPrimary = true
		}
	}

	seen := make(map[string]bool, len(active))
	for _, port := range active {
		if wanted[port] || seen[port] {
			continue
		}
		seen[port] = true
		plan.ToDisable = append(plan.ToDisable, port)
	}
	return plan
}
