package synth

import (
	"regexp"

	"github.com/promptlens/promptlens/internal/classification"
)

// Intent labels, in the order used for the class set.
const (
	IntentAppointment = "appointment request"
	IntentMedication  = "medication question"
	IntentBilling     = "billing inquiry"
	IntentTestResults = "test results"
	IntentGeneral     = "general question"
	IntentComplaint   = "complaint"
)

// Intents is the fixed label universe of the patient communication dataset.
var Intents = classification.MustClassSet(
	IntentAppointment,
	IntentMedication,
	IntentBilling,
	IntentTestResults,
	IntentGeneral,
	IntentComplaint,
)

var (
	urgencyLevels = []string{"low", "medium", "high", "urgent"}
	patientTypes  = []string{"new", "existing", "vip", "senior"}
)

var messagePatterns = map[string][]string{
	IntentAppointment: {
		"I need to schedule an appointment with Dr. Smith",
		"Can I book a follow-up visit for next week?",
		"I'd like to make an appointment for my annual checkup",
		"Need to reschedule my appointment from Tuesday to Thursday",
		"Looking to schedule a consultation about my back pain",
		"Can you help me book an appointment with the cardiologist?",
		"I need to see a specialist for my knee injury",
		"Want to schedule a routine physical examination",
		"Need an appointment for my prescription refill",
		"Can I get an appointment for my chronic condition review",
	},
	IntentMedication: {
		"What are the side effects of my blood pressure medication?",
		"Can I take this medication with food?",
		"I'm running low on my prescription, can I get a refill?",
		"Is it safe to take this medicine while pregnant?",
		"What time should I take my diabetes medication?",
		"I missed a dose of my medication, what should I do?",
		"Can you explain what this new medication does?",
		"I'm experiencing side effects from my medication",
		"Do I need to adjust my medication dosage?",
		"Can I get a generic version of my prescription?",
	},
	IntentBilling: {
		"I received a bill that seems incorrect",
		"Can you explain the charges on my statement?",
		"I need to set up a payment plan for my medical bills",
		"Why wasn't my insurance applied to this visit?",
		"I think there's an error in my billing statement",
		"Can I get an itemized breakdown of my charges?",
		"I need help understanding my copay amount",
		"Why am I being charged for a service I didn't receive?",
		"Can you help me dispute this medical bill?",
		"I need to update my insurance information",
	},
	IntentTestResults: {
		"When will my blood test results be available?",
		"Can you explain what my lab results mean?",
		"I need to get a copy of my test results",
		"Are my test results normal?",
		"Can you send my results to my specialist?",
		"I'm concerned about my recent test results",
		"When should I get my next round of tests?",
		"Can you explain the abnormal values in my results?",
		"I need to schedule follow-up tests",
		"Are my test results ready for my appointment?",
	},
	IntentGeneral: {
		"What are your office hours?",
		"Do you accept my insurance plan?",
		"Can you recommend a good specialist?",
		"What should I bring to my first appointment?",
		"How do I access my medical records online?",
		"What's the best way to contact my doctor?",
		"Do you offer telehealth appointments?",
		"Can you help me find a primary care physician?",
		"What's your cancellation policy?",
		"How do I request a referral to a specialist?",
	},
	IntentComplaint: {
		"I'm very unhappy with my last visit",
		"The wait time was unacceptable",
		"The staff was rude to me during my appointment",
		"I'm filing a complaint about my treatment",
		"The doctor didn't listen to my concerns",
		"I'm dissatisfied with the care I received",
		"The facility was not clean during my visit",
		"I want to speak to a manager about my experience",
		"The billing department made multiple errors",
		"I'm extremely frustrated with the service quality",
	},
}

// classDifficulty shifts the base accuracy per intent.
var classDifficulty = map[string]float64{
	IntentComplaint: 0.02,
	IntentGeneral:   -0.03,
	IntentBilling:   -0.01,
}

type weightedIntent struct {
	intent string
	weight float64
}

// confusionPatterns lists, per true intent, the labels a mistaken
// prediction lands on and how often.
var confusionPatterns = map[string][]weightedIntent{
	IntentAppointment: {{IntentGeneral, 0.3}, {IntentMedication, 0.1}, {IntentTestResults, 0.1}},
	IntentMedication:  {{IntentAppointment, 0.2}, {IntentGeneral, 0.2}, {IntentTestResults, 0.1}},
	IntentBilling:     {{IntentGeneral, 0.4}, {IntentComplaint, 0.2}, {IntentAppointment, 0.1}},
	IntentTestResults: {{IntentMedication, 0.3}, {IntentGeneral, 0.2}, {IntentAppointment, 0.1}},
	IntentGeneral:     {{IntentAppointment, 0.3}, {IntentMedication, 0.2}, {IntentTestResults, 0.1}},
	IntentComplaint:   {{IntentBilling, 0.4}, {IntentGeneral, 0.2}, {IntentAppointment, 0.1}},
}

// nearMisses are the plausible wrong labels used by the recall-oriented simulator.
var nearMisses = map[string][]string{
	IntentAppointment: {IntentGeneral, IntentMedication},
	IntentMedication:  {IntentAppointment, IntentTestResults},
	IntentBilling:     {IntentGeneral, IntentComplaint},
	IntentTestResults: {IntentMedication, IntentGeneral},
	IntentGeneral:     {IntentAppointment, IntentMedication},
	IntentComplaint:   {IntentBilling, IntentGeneral},
}

// intentHints match messages whose intent is obvious from keywords.
var intentHints = map[string]*regexp.Regexp{
	IntentAppointment: regexp.MustCompile(`(?i)schedule|appointment|book|reschedul`),
	IntentMedication:  regexp.MustCompile(`(?i)medicat|prescription|dose|refill|side effect`),
	IntentBilling:     regexp.MustCompile(`(?i)bill|charge|copay|insurance|statement|payment`),
	IntentTestResults: regexp.MustCompile(`(?i)result|lab|blood test|abnormal|values`),
	IntentGeneral:     regexp.MustCompile(`(?i)hours|telehealth|records|referral|policy|doctor`),
	IntentComplaint:   regexp.MustCompile(`(?i)unhappy|wait|rude|complain|dissatisf|frustrat|not clean`),
}

// responsePriority maps urgency to 1..4, adding one for complaints and
// medication questions, capped at 5.
func responsePriority(intent, urgency string) int {
	p := 1
	switch urgency {
	case "urgent":
		p = 4
	case "high":
		p = 3
	case "medium":
		p = 2
	}
	if intent == IntentComplaint || intent == IntentMedication {
		p = min(5, p+1)
	}
	return p
}
