package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/promptlens/promptlens/internal/classification"
)

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one evaluation.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one gated metric.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure is a missed threshold.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check that could not be evaluated.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit turns a report and its thresholds into one suite with a
// test case per overall metric and one per class.
func ConvertToJUnit(name string, r *classification.Report, t Thresholds, at time.Time) *JUnitTestSuites {
	failures := t.Check(r)
	overallFail := make(map[string]GateFailure)
	classFail := make(map[string]GateFailure)
	for _, f := range failures {
		if f.Class != "" {
			classFail[f.Class] = f
		} else {
			overallFail[f.Check] = f
		}
	}

	suite := JUnitTestSuite{
		Name:      name,
		Timestamp: at.UTC().Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "samples", Value: fmt.Sprintf("%d", r.Samples)},
			{Name: "accuracy", Value: fmt.Sprintf("%.4f", r.Accuracy)},
			{Name: "macro_f1", Value: fmt.Sprintf("%.4f", r.MacroF1)},
			{Name: "auc", Value: fmt.Sprintf("%.4f", r.AUC)},
		},
	}

	for _, check := range []string{CheckAccuracy, CheckMacroF1, CheckAUC} {
		tc := JUnitTestCase{Name: check, Classname: name}
		if f, ok := overallFail[check]; ok {
			tc.Failure = &JUnitFailure{Message: f.String(), Type: "ThresholdFailure"}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	for _, pc := range r.PerClass {
		tc := JUnitTestCase{Name: pc.Class, Classname: name + ".classes"}
		switch f, failed := classFail[pc.Class]; {
		case pc.Support == 0:
			tc.Skipped = &JUnitSkipped{Message: "no samples of this class"}
		case failed:
			tc.Failure = &JUnitFailure{
				Message: f.String(),
				Type:    "ThresholdFailure",
				Body: fmt.Sprintf("precision=%.3f recall=%.3f tp=%d fp=%d fn=%d",
					pc.Precision, pc.Recall, pc.TruePositives, pc.FalsePositives, pc.FalseNegatives),
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	for _, tc := range suite.TestCases {
		suite.Tests++
		if tc.Failure != nil {
			suite.Failures++
		}
		if tc.Skipped != nil {
			suite.Skipped++
		}
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes the JUnit rendering of r to path.
func WriteJUnitXML(path, name string, r *classification.Report, t Thresholds, at time.Time) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(name, r, t, at), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}
