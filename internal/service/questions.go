package service

import "asd-screen/internal/domain"

// Question es una pregunta conductual del cuestionario y su clave de formulario.
type Question struct {
	Key  string
	Text string
}

var screeningQuestionTexts = [domain.QuestionCount]string{
	"I often notice small sounds when others do not.",
	"I usually concentrate more on the whole picture, rather than the small details.",
	"I find it easy to do more than one thing at once.",
	"If there is an interruption, I can switch back to what I was doing very quickly.",
	"I find it easy to 'read between the lines' when someone is talking to me.",
	"I know how to tell if someone listening to me is getting bored.",
	"When I'm reading a story I find it difficult to work out the characters' intentions.",
	"I like to collect information about categories of things.",
	"I find it easy to work out what someone is thinking or feeling just by looking at their face.",
	"I find it difficult to work out people's intentions.",
}

// ScreeningQuestions devuelve las diez preguntas en orden A1..A10.
func ScreeningQuestions() []Question {
	out := make([]Question, 0, domain.QuestionCount)
	for i, text := range screeningQuestionTexts {
		out = append(out, Question{Key: domain.QuestionKey(i + 1), Text: text})
	}
	return out
}
