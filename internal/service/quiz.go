package service

// Axis is one of the five scoring dimensions shared by result vectors and the
// category table.
type Axis int

const (
	AxisSize Axis = iota
	AxisHabitat
	AxisSpeed
	AxisRarity
	AxisDiet
)

// AxisCount is the dimension of a Vector.
const AxisCount = 5

// ScoredQuestions is the number of questions a catalog must hold for a result to
// be derived: every axis is probed twice, and question i pairs with question
// i+AxisCount.
const ScoredQuestions = 2 * AxisCount

var axisNames = [AxisCount]string{"size", "habitat", "speed", "rarity", "diet"}

func (a Axis) String() string {
	if a < 0 || int(a) >= AxisCount {
		return "unknown"
	}
	return axisNames[a]
}

type AnswerOption struct {
	Ordinal int
	Label   string
	Rank    float64
}

type QuestionRecord struct {
	Text    string
	Answers []AnswerOption
}

// Prompt is what the transport shows for the current question.
type Prompt struct {
	Index  int
	Total  int
	Text   string
	Labels []string
}

func newPrompt(q QuestionRecord, index, total int) Prompt {
	labels := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		labels[i] = a.Label
	}
	return Prompt{
		Index:  index,
		Total:  total,
		Text:   q.Text,
		Labels: labels,
	}
}
