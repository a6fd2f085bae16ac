package analysis

import "freight-calc/internal/model"

// Context bundles every summary an external assistant needs to explain
// the plan. Sections that cannot be built are left nil and their error
// text is recorded under the section name.
type Context struct {
	Report     *Report           `json:"report,omitempty"`
	Comparison *Comparison       `json:"comparison,omitempty"`
	Risk       *Risk             `json:"risk_report,omitempty"`
	Top5       []TopEntry        `json:"top5"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// BuildContext runs the report, comparison and risk views together.
func BuildContext(ds *model.Dataset) *Context {
	c := &Context{}
	fail := func(section string, err error) {
		if c.Errors == nil {
			c.Errors = map[string]string{}
		}
		c.Errors[section] = err.Error()
	}

	if r, err := BuildReport(ds); err != nil {
		fail("report", err)
	} else {
		c.Report = r
	}
	if cmp, err := Compare(ds); err != nil {
		fail("comparison", err)
	} else {
		c.Comparison = cmp
	}
	if risk, err := AssessRisk(scenariosOf(ds)); err != nil {
		fail("risk_report", err)
	} else {
		c.Risk = risk
	}

	c.Top5, _ = TopN(ds, 5)
	return c
}

func scenariosOf(ds *model.Dataset) []model.ScenarioOutcome {
	if ds == nil {
		return nil
	}
	return ds.Scenarios
}
