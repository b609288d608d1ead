package validation

// ValidationResult is the ordered list of problems produced by one or more rules.
// The zero value is a valid (empty) result.
type ValidationResult struct {
	problems []Problem
}

// Pass returns an empty result.
func Pass() ValidationResult {
	return ValidationResult{}
}

// Fail returns a result carrying the given problems in order.
func Fail(problems ...Problem) ValidationResult {
	if len(problems) == 0 {
		return ValidationResult{}
	}
	out := make([]Problem, len(problems))
	copy(out, problems)
	return ValidationResult{problems: out}
}

// Valid reports whether no problems were raised.
func (r ValidationResult) Valid() bool {
	return len(r.problems) == 0
}

// Problems returns a copy of the problems in execution order.
func (r ValidationResult) Problems() []Problem {
	if len(r.problems) == 0 {
		return nil
	}
	out := make([]Problem, len(r.problems))
	copy(out, r.problems)
	return out
}

// Len returns the number of problems.
func (r ValidationResult) Len() int {
	return len(r.problems)
}

// Codes returns the problem codes in order, duplicates included.
func (r ValidationResult) Codes() []ProblemCode {
	codes := make([]ProblemCode, 0, len(r.problems))
	for _, p := range r.problems {
		codes = append(codes, p.Code)
	}
	return codes
}

// Has reports whether any problem carries code.
func (r ValidationResult) Has(code ProblemCode) bool {
	for _, p := range r.problems {
		if p.Code == code {
			return true
		}
	}
	return false
}

// Concat appends other's problems after r's. Neither input is modified.
func (r ValidationResult) Concat(other ValidationResult) ValidationResult {
	if len(other.problems) == 0 {
		return r
	}
	if len(r.problems) == 0 {
		return other
	}
	out := make([]Problem, 0, len(r.problems)+len(other.problems))
	out = append(out, r.problems...)
	out = append(out, other.problems...)
	return ValidationResult{problems: out}
}

// Equal reports whether both results hold equal problems in the same order.
func (r ValidationResult) Equal(other ValidationResult) bool {
	if len(r.problems) != len(other.problems) {
		return false
	}
	for i := range r.problems {
		if !r.problems[i].Equal(other.problems[i]) {
			return false
		}
	}
	return true
}
