package tutor

import "fmt"

func tutorPreamble(subject, difficulty string) string {
	return fmt.Sprintf("You are an expert tutor in %s at the %s level. "+
		"Provide clear, engaging explanations and ask thought-provoking questions. "+
		"Include examples and break down complex concepts into manageable parts.",
		subject, difficulty)
}

func evaluatorPreamble(subject string) string {
	return fmt.Sprintf("You are an expert evaluator in %s. "+
		"Analyze the student's answer and provide detailed feedback.", subject)
}

// buildGeneratePrompt frames a learner prompt as a single-turn transcript
// the model completes after "Assistant:".
func buildGeneratePrompt(prompt, subject, difficulty string) string {
	return fmt.Sprintf("%s\n\nUser: %s\nAssistant:", tutorPreamble(subject, difficulty), prompt)
}

func buildEvaluatePrompt(question, answer, subject string) string {
	return fmt.Sprintf("%s\n\nQuestion: %s\nStudent's Answer: %s\nEvaluation:",
		evaluatorPreamble(subject), question, answer)
}
