package advice

import "fmt"

// Kind classifies an advice outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindAuthError
	KindAPIError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAuthError:
		return "auth_error"
	case KindAPIError:
		return "api_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the resolved outcome of one advice request. Text always holds a
// displayable string: the answer on success, the error message otherwise.
type Result struct {
	Kind  Kind
	Text  string
	Model string
}

func Success(model, text string) Result {
	return Result{Kind: KindSuccess, Text: text, Model: model}
}

func Failure(kind Kind, message string) Result {
	return Result{Kind: kind, Text: message}
}

func (r Result) OK() bool { return r.Kind == KindSuccess }

func (r Result) String() string { return r.Text }
