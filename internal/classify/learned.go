package classify

// Classifier is the optional learned-classifier capability. It returns a
// single category for the text, or ok=false when it has no opinion. It is
// consulted only when no rule matched, and only for the single-valued
// category field.
type Classifier interface {
	Classify(text string) (category string, ok bool)
}

// Noop is the stand-in used when no learned classifier is available.
type Noop struct{}

// Classify always reports no opinion.
func (Noop) Classify(string) (string, bool) { return "", false }

// Func adapts a plain function to the Classifier interface.
type Func func(text string) (string, bool)

// Classify calls the wrapped function, treating a panic as absence so a
// misbehaving model can never take down an ingestion task.
func (f Func) Classify(text string) (category string, ok bool) {
	defer func() {
		if recover() != nil {
			category, ok = "", false
		}
	}()
	return f(text)
}
