package ai

// riskAnalysisPrompt asks the model for a plain-text scam assessment of the
// page content. The scoring engine scans the answer for fixed phrases, so
// the prompt stays free-form on purpose.
const riskAnalysisPrompt = `Analyze the following website content and determine if it's likely to be a scam.
Consider factors like suspicious offers, poor grammar, urgency tactics, and other red flags.

Content: %s

Analysis:`
