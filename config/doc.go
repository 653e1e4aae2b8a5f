// Package config supplies functional-option builders for
// discover.Policy, verify.Policy, and detect.Policy.
//
// Every Policy type is itself a plain, explicit struct: the module keeps
// zero ambient or global state, and a Policy{} zero value is always
// valid (all defaults documented per field). This package does not
// replace that — it adds an optional, teacher-style functional-options
// veneer on top (WithXxx(...) Option, then NewXxxPolicy(opts...)) for
// callers who would rather compose options than author a struct
// literal.
package config
