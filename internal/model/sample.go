// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// SampleQuestion is the demo question shown when no solutions file is given.
const SampleQuestion = "I'm getting Error Code E-047 on the starboard main engine. What should I do?"

// SampleSolutions returns the built-in demo list: three fuel-system
// diagnostics ranked high, medium and low.
func SampleSolutions() []Solution {
	return []Solution{
		{
			ID:         "solution-1",
			Title:      "Primary Fuel System Diagnostic - Filter Inspection",
			Confidence: ConfidenceHigh,
			Source:     Source{Title: "MTU 2000 Series Manual", Page: IntPtr(247), Revision: "2024.3"},
			Steps: []Step{
				{Text: "Shutdown engine and ensure all fuel lines are depressurized before beginning inspection.", Type: StepWarning, Bold: true},
				{Text: "Remove fuel filter housing using the specialized wrench (Part #MT-4472).", Type: StepNormal},
				{Text: "Inspect filter element for rust deposits, fuel contamination, or physical blockage.", Type: StepNormal},
				{Text: "Check filter housing O-rings for cracking or degradation - replace if worn.", Type: StepTip},
				{Text: "If filter shows contamination, replace with OEM filter (Part #MT-FF-2000) and prime system.", Type: StepNormal, Bold: true},
			},
			ProcedureLink: "/procedures/mtu-fuel-filter-replacement",
		},
		{
			ID:         "solution-2",
			Title:      "Fuel Pressure Sensor Calibration Check",
			Confidence: ConfidenceMedium,
			Source:     Source{Title: "Engine Control Module Manual", Page: IntPtr(156), Revision: "2024.1"},
			Steps: []Step{
				{Text: "Connect diagnostic scanner to ECM port (J1939 interface).", Type: StepNormal},
				{Text: "Navigate to sensor diagnostics menu and select fuel pressure sensor.", Type: StepNormal},
				{Text: "Compare live sensor readings with expected values at idle (2.8-3.2 bar).", Type: StepNormal, Bold: true},
				{Text: "If readings are outside tolerance, perform sensor recalibration procedure.", Type: StepWarning},
			},
			ProcedureLink: "/procedures/ecm-sensor-calibration",
		},
		{
			ID:         "solution-3",
			Title:      "Fuel Line Pressure Test - Alternative Diagnosis",
			Confidence: ConfidenceLow,
			Source:     Source{Title: "Adam's Maintenance Log", Page: IntPtr(23), Revision: "2024.2"},
			Steps: []Step{
				{Text: "Install pressure gauge at fuel rail test port using adapter kit.", Type: StepNormal},
				{Text: "Start engine and monitor pressure during idle and load conditions.", Type: StepNormal},
				{Text: "Pressure should remain stable - fluctuations indicate potential pump issues.", Type: StepTip},
				{Text: "This method is less reliable than direct sensor testing but can provide backup diagnosis.", Type: StepWarning, Bold: true},
			},
			ProcedureLink: "/procedures/fuel-pressure-manual-test",
		},
	}
}

// SampleIntro is the assistant's lead-in sentence for a solution list.
func SampleIntro(n int) string {
	switch n {
	case 0:
		return "I could not find a matching procedure in your maintenance documentation."
	case 1:
		return "I found 1 potential solution in your maintenance documentation:"
	}
	return "I found " + itoa(n) + " potential solutions in your maintenance documentation. " +
		"Each solution is ranked by confidence level and includes step-by-step procedures:"
}
