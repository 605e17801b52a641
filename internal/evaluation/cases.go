package evaluation

// Case is one canonical question with its expected retrieval sources,
// answer keywords, and optionally the tool the answer must have used.
type Case struct {
	Question         string
	ExpectedSources  []string
	ExpectedKeywords []string
	ExpectedTool     string
}

// CanonicalCases returns the fixed evaluation set. Questions without
// expected sources are tool-only and skipped by retrieval scoring.
func CanonicalCases() []Case {
	return []Case{
		{
			Question:         "What is CPT analysis used for in settlement calculations?",
			ExpectedSources:  []string{"cpt_analysis_basics", "cpt_correlations"},
			ExpectedKeywords: []string{"cone penetration test", "tip resistance", "settlement", "modulus"},
		},
		{
			Question:         "How is liquefaction potential assessed using CPT data?",
			ExpectedSources:  []string{"liquefaction_analysis"},
			ExpectedKeywords: []string{"liquefaction", "cyclic resistance", "factor of safety", "cpt"},
		},
		{
			Question:         "Calculate settlement for load = 150 and Young's modulus = 30000",
			ExpectedKeywords: []string{"settlement", "0.005", "calculat"},
			ExpectedTool:     "settlement_calculator",
		},
		{
			Question:         "What are the main features of Settle3 software?",
			ExpectedSources:  []string{"settle3_help_overview"},
			ExpectedKeywords: []string{"settle3", "settlement analysis", "3d", "multi-layer"},
		},
		{
			Question:         "Calculate bearing capacity for B = 2, gamma = 18, Df = 1.5, friction angle = 35",
			ExpectedKeywords: []string{"bearing capacity", "ultimate", "terzaghi"},
			ExpectedTool:     "bearing_capacity_calculator",
		},
		{
			Question:         "How do you correlate CPT data to soil strength parameters?",
			ExpectedSources:  []string{"cpt_correlations"},
			ExpectedKeywords: []string{"correlations", "undrained shear strength", "friction angle"},
		},
		{
			Question:         "What is the difference between immediate and consolidation settlement?",
			ExpectedSources:  []string{"settlement_calculation_methods"},
			ExpectedKeywords: []string{"immediate settlement", "consolidation", "primary", "secondary"},
		},
		{
			Question:         "What are bearing capacity factors Nq and Nr?",
			ExpectedSources:  []string{"bearing_capacity_fundamentals"},
			ExpectedKeywords: []string{"bearing capacity factors", "terzaghi", "friction angle", "nq"},
		},
	}
}
