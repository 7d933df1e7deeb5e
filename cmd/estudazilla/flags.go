package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

// StyleFlag selects a summary style.
type StyleFlag summary.Style

// Set implements pflag.Value.
func (s *StyleFlag) Set(v string) error {
	for _, style := range summary.Styles {
		if strings.EqualFold(v, string(style)) {
			*s = StyleFlag(style)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid values are %q", v, summary.Styles)
}

// String implements pflag.Value.
func (s *StyleFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *StyleFlag) Type() string {
	return "style"
}

// QuestionTypeFlag selects a question type.
type QuestionTypeFlag quiz.Type

// Set implements pflag.Value.
func (q *QuestionTypeFlag) Set(v string) error {
	for _, t := range quiz.Types {
		if strings.EqualFold(v, string(t)) {
			*q = QuestionTypeFlag(t)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid values are %q", v, quiz.Types)
}

// String implements pflag.Value.
func (q *QuestionTypeFlag) String() string {
	if q == nil {
		return ""
	}
	return string(*q)
}

// Type implements pflag.Value.
func (q *QuestionTypeFlag) Type() string {
	return "type"
}

var (
	_ pflag.Value = (*StyleFlag)(nil)
	_ pflag.Value = (*QuestionTypeFlag)(nil)
)
