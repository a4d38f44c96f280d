package actions

// Kind classifies a failed command so the transport can pick a status code.
type Kind string

const (
	KindUnauthorized  Kind = "unauthorized"
	KindNotFound      Kind = "not_found"
	KindValidation    Kind = "validation"
	KindPersistence   Kind = "persistence"
	KindQuotaExceeded Kind = "quota_exceeded"
)

// Result is what every command returns. Exactly one of Data or Error is
// meaningful; FieldErrors is only set alongside KindValidation.
type Result[T any] struct {
	Data        T                 `json:"data"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Kind        Kind              `json:"-"`
}

func (r Result[T]) OK() bool { return r.Kind == "" }

func ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func fail[T any](kind Kind, msg string) Result[T] {
	return Result[T]{Error: msg, Kind: kind}
}

func invalid[T any](fields map[string]string) Result[T] {
	return Result[T]{Error: "Invalid input", FieldErrors: fields, Kind: KindValidation}
}
