package domain

import "strings"

// ParseQuestionLine parses one pipe-delimited bank row. Rows with fewer
// than six fields are rejected; extra middle fields are tolerated, with
// the last field always read as the correct answer.
func ParseQuestionLine(line string) (Question, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Question{}, false
	}
	fields := strings.Split(line, "|")
	if len(fields) < 6 {
		return Question{}, false
	}
	return Question{
		Text:          fields[0],
		Options:       fields[1:5],
		CorrectAnswer: fields[len(fields)-1],
	}, true
}

// ParseQuestionRows parses a block of rows, returning the well-formed
// questions in input order and the number of dropped rows.
func ParseQuestionRows(raw string) ([]Question, int) {
	var questions []Question
	dropped := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		q, ok := ParseQuestionLine(line)
		if !ok {
			dropped++
			continue
		}
		questions = append(questions, q)
	}
	return questions, dropped
}
