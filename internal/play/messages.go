package play

import "github.com/anhpng/luyende/internal/quiz"

// questionsMsg is sent when a question batch has been fetched.
type questionsMsg struct {
	Questions []quiz.Question
	Err       error
}

// explanationMsg is sent when the explanation for the last answer arrives.
type explanationMsg struct {
	// Index guards against a slow explanation landing on a later question.
	Index       int
	Explanation string
	Err         error
}
