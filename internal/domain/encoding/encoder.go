// Package encoding maps categorical labels to the integer codes a trained
// model was fit on.
package encoding

import (
	"fmt"
	"strings"
)

// Encoder converts a category label to its integer code.
type Encoder interface {
	Encode(value string) (int, error)
}

// LabelEncoder assigns codes by position in a fixed vocabulary. The
// vocabulary order is kept verbatim: it must replicate the assignment used
// when the model was trained.
type LabelEncoder struct {
	name    string
	classes []string
	index   map[string]int
}

// Fit builds a LabelEncoder over vocabulary. The code of each label is its
// zero-based position in vocabulary.
func Fit(vocabulary []string, opts ...Option) (*LabelEncoder, error) {
	e := &LabelEncoder{name: "category"}
	for _, opt := range opts {
		opt(e)
	}

	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: %s vocabulary is empty", ErrInvalidVocabulary, e.name)
	}

	e.classes = make([]string, len(vocabulary))
	e.index = make(map[string]int, len(vocabulary))
	for i, label := range vocabulary {
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("%w: %s vocabulary has a blank label at %d", ErrInvalidVocabulary, e.name, i)
		}
		if prev, dup := e.index[label]; dup {
			return nil, fmt.Errorf("%w: %s label %q at %d duplicates %d", ErrInvalidVocabulary, e.name, label, i, prev)
		}
		e.classes[i] = label
		e.index[label] = i
	}
	return e, nil
}

// Encode returns the code of value, or ErrUnknownCategory if value is not
// part of the fitted vocabulary. There is no fallback code.
func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrUnknownCategory, e.name, value)
	}
	return code, nil
}

// Decode is the inverse of Encode.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("%w: %s code %d", ErrUnknownCategory, e.name, code)
	}
	return e.classes[code], nil
}

// Classes returns a copy of the vocabulary in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len returns the vocabulary size.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Name returns the field name used in error messages.
func (e *LabelEncoder) Name() string { return e.name }
