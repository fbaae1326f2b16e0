package hud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	dErrors "hmis/pkg/domain-errors"
)

// Normalizer turns raw spreadsheet cells into codes, dates and SSNs. Without a
// Prompter it fails on the first bad value; with one it asks the operator for
// a correction until a value parses or the prompt is cancelled.
type Normalizer struct {
	equivalents *Equivalents
	prompter    Prompter
	now         func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithEquivalents replaces the built-in equivalents table.
func WithEquivalents(e *Equivalents) Option {
	return func(n *Normalizer) {
		if e != nil {
			n.equivalents = e
		}
	}
}

// WithPrompter enables interactive correction.
func WithPrompter(p Prompter) Option {
	return func(n *Normalizer) {
		n.prompter = p
	}
}

// WithClock sets the reference time used to place two-digit years.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		equivalents: DefaultEquivalents(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Interactive reports whether failures are offered to an operator.
func (n *Normalizer) Interactive() bool {
	return n.prompter != nil
}

// Equivalents returns the table used by Match.
func (n *Normalizer) Equivalents() *Equivalents {
	return n.equivalents
}

// ResolveCode maps raw onto a code of t. Lookup order: case-insensitive exact
// label match, empty cell to "Data not collected", then the equivalents table.
func (n *Normalizer) ResolveCode(ctx context.Context, t *Table, raw string) (Code, error) {
	if code, ok := n.Match(t, raw); ok {
		return code, nil
	}
	err := dErrors.Newf(dErrors.CodeNoMatchingCode, "no %s code matches %q", t.Name, raw)

	var code Code
	perr := n.correct(ctx, err, fmt.Sprintf("%q is not a valid %s (one of: %s)", raw, t.Name, labelList(t)),
		func(answer string) error {
			c, ok := n.Match(t, answer)
			if !ok {
				return dErrors.Newf(dErrors.CodeNoMatchingCode, "no %s code matches %q", t.Name, answer)
			}
			code = c
			return nil
		})
	if perr != nil {
		return Blank, perr
	}
	return code, nil
}

// ResolveCodes resolves each part of a multi-valued cell. No parts resolves to
// the table's "Data not collected" code.
func (n *Normalizer) ResolveCodes(ctx context.Context, t *Table, parts []string) ([]Code, error) {
	if len(parts) == 0 {
		code, err := n.ResolveCode(ctx, t, "")
		if err != nil {
			return nil, err
		}
		return []Code{code}, nil
	}
	codes := make([]Code, 0, len(parts))
	seen := make(map[Code]struct{}, len(parts))
	for _, part := range parts {
		code, err := n.ResolveCode(ctx, t, part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// Match is the non-interactive lookup behind ResolveCode.
func (n *Normalizer) Match(t *Table, raw string) (Code, bool) {
	raw = clean(raw)
	for _, e := range t.entries {
		if strings.EqualFold(e.Label, raw) {
			return e.Code, true
		}
	}
	if raw == "" {
		return t.NotCollected()
	}
	for _, canonical := range n.equivalents.Canonical(raw) {
		for _, e := range t.entries {
			if strings.EqualFold(e.Label, canonical) {
				return e.Code, true
			}
		}
	}
	return Blank, false
}

// Date layouts tried in order. Four-digit years first.
var dateLayouts = []string{"1/2/2006", "2006-01-02", "1/2/06"}

// ParseDate parses raw with the first matching layout. An empty cell is the
// zero time.
func (n *Normalizer) ParseDate(ctx context.Context, raw string) (time.Time, error) {
	d, err := n.parseDate(raw)
	if err == nil {
		return d, nil
	}
	perr := n.correct(ctx, err, fmt.Sprintf("%q is not a date (M/D/YYYY)", raw), func(answer string) error {
		d, err = n.parseDate(answer)
		return err
	})
	if perr != nil {
		return time.Time{}, perr
	}
	return d, nil
}

func (n *Normalizer) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for i, layout := range dateLayouts {
		d, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if i == len(dateLayouts)-1 && d.After(n.now().AddDate(1, 0, 0)) {
			d = d.AddDate(-100, 0, 0)
		}
		return d, nil
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeDateParse, "cannot parse date %q", raw)
}

// ParseSSN strips separators and validates the digits. Blank and all-zero
// values become "".
func (n *Normalizer) ParseSSN(ctx context.Context, raw string) (string, error) {
	ssn, err := parseSSN(raw)
	if err == nil {
		return ssn, nil
	}
	perr := n.correct(ctx, err, fmt.Sprintf("%q is not a valid SSN", raw), func(answer string) error {
		ssn, err = parseSSN(answer)
		return err
	})
	if perr != nil {
		return "", perr
	}
	return ssn, nil
}

func parseSSN(raw string) (string, error) {
	ssn := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if strings.Trim(ssn, "0") == "" {
		return "", nil
	}
	if len(ssn) > 9 || strings.IndexFunc(ssn, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", dErrors.Newf(dErrors.CodeInvalidSSN, "invalid SSN %q", raw)
	}
	return ssn, nil
}

// Ask prompts the operator directly. It fails with cause when the normalizer
// is not interactive or the prompt is cancelled.
func (n *Normalizer) Ask(ctx context.Context, cause error, message string) (string, error) {
	if n.prompter == nil {
		return "", cause
	}
	answer, err := n.prompter.Prompt(ctx, message+": ")
	if err != nil {
		if errors.Is(err, ErrPromptCancelled) {
			return "", cause
		}
		return "", err
	}
	return answer, nil
}

// correct loops on the prompter until try accepts an answer. Cancelling
// returns the original failure.
func (n *Normalizer) correct(ctx context.Context, cause error, message string, try func(answer string) error) error {
	if n.prompter == nil {
		return cause
	}
	for {
		answer, err := n.Ask(ctx, cause, message)
		if err != nil {
			return err
		}
		if err := try(answer); err != nil {
			message = err.Error()
			continue
		}
		return nil
	}
}

func clean(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

func labelList(t *Table) string {
	labels := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Code == Blank {
			continue
		}
		labels = append(labels, e.Label)
	}
	return strings.Join(labels, "; ")
}

// ParseDate parses raw without operator correction.
func ParseDate(raw string) (time.Time, error) {
	return defaultNormalizer.parseDate(raw)
}

// ParseSSN normalizes raw without operator correction.
func ParseSSN(raw string) (string, error) {
	return parseSSN(raw)
}

var defaultNormalizer = NewNormalizer()
