package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	questionMarker = "question:"
	answersMarker  = "answers:"
)

// LoadCatalog reads the question catalog at path.
func LoadCatalog(path string) ([]QuestionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	questions, err := ParseCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return questions, nil
}

// ParseCatalog parses the line-oriented catalog format:
//
//	question: <text>
//	<more text>
//	answers: 1. <label>:<rank>; 2. <label>:<rank>
//
// The first malformed line aborts the parse.
func ParseCatalog(r io.Reader) ([]QuestionRecord, error) {
	var (
		questions []QuestionRecord
		current   *QuestionRecord
		textOpen  bool
		lineNo    int
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Answers) == 0 {
			return &MalformedError{Line: lineNo, Text: current.Text, Err: errors.New("question has no answers")}
		}
		questions = append(questions, *current)
		current = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, questionMarker):
			if err := flush(); err != nil {
				return nil, err
			}
			current = &QuestionRecord{Text: strings.TrimSpace(strings.TrimPrefix(line, questionMarker))}
			textOpen = true

		case strings.HasPrefix(line, answersMarker):
			if current == nil {
				return nil, &MalformedError{Line: lineNo, Text: line, Err: errors.New("answers without a question")}
			}
			if !textOpen {
				return nil, &MalformedError{Line: lineNo, Text: line, Err: errors.New("duplicate answers line")}
			}
			answers, err := parseAnswers(strings.TrimPrefix(line, answersMarker))
			if err != nil {
				return nil, &MalformedError{Line: lineNo, Text: line, Err: err}
			}
			current.Answers = answers
			textOpen = false

		case textOpen:
			if current.Text == "" {
				current.Text = line
			} else {
				current.Text += "\n" + line
			}

		default:
			return nil, &MalformedError{Line: lineNo, Text: line, Err: errors.New("text outside a question")}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}
	return questions, nil
}

// parseAnswers parses "1. label:rank; 2. label:rank". Ordinals must run 1..n in
// order.
func parseAnswers(list string) ([]AnswerOption, error) {
	var answers []AnswerOption
	for _, clause := range strings.Split(list, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		answer, err := parseAnswerClause(clause)
		if err != nil {
			return nil, err
		}
		if want := len(answers) + 1; answer.Ordinal != want {
			return nil, fmt.Errorf("answer %q: expected ordinal %d, got %d", clause, want, answer.Ordinal)
		}
		answers = append(answers, answer)
	}
	if len(answers) == 0 {
		return nil, errors.New("empty answer list")
	}
	return answers, nil
}

func parseAnswerClause(clause string) (AnswerOption, error) {
	number, rest, ok := strings.Cut(clause, ".")
	if !ok {
		return AnswerOption{}, fmt.Errorf("answer %q: missing ordinal", clause)
	}
	ordinal, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return AnswerOption{}, fmt.Errorf("answer %q: invalid ordinal: %w", clause, err)
	}

	sep := strings.LastIndex(rest, ":")
	if sep < 0 {
		return AnswerOption{}, fmt.Errorf("answer %q: missing rank", clause)
	}
	label := strings.TrimSpace(rest[:sep])
	if label == "" {
		return AnswerOption{}, fmt.Errorf("answer %q: empty label", clause)
	}
	rank, err := strconv.ParseFloat(strings.TrimSpace(rest[sep+1:]), 64)
	if err != nil {
		return AnswerOption{}, fmt.Errorf("answer %q: invalid rank: %w", clause, err)
	}

	return AnswerOption{Ordinal: ordinal, Label: label, Rank: rank}, nil
}

// FormatCatalog renders questions in the format ParseCatalog reads.
func FormatCatalog(questions []QuestionRecord) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(questionMarker + " " + q.Text + "\n")

		clauses := make([]string, len(q.Answers))
		for j, a := range q.Answers {
			clauses[j] = fmt.Sprintf("%d. %s:%s", a.Ordinal, a.Label, strconv.FormatFloat(a.Rank, 'f', -1, 64))
		}
		b.WriteString(answersMarker + " " + strings.Join(clauses, "; ") + "\n")
	}
	return b.String()
}
