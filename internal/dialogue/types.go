package dialogue

import (
	"time"

	"timesheet-assistant/internal/model"
)

// Step is the position of a conversation in the question sequence.
type Step string

const (
	StepGreeting     Step = "greeting"
	StepTask         Step = "task"
	StepTime         Step = "time"
	StepWorkType     Step = "workType"
	StepMatter       Step = "matter"
	StepCostCentre   Step = "costCentre"
	StepBusinessArea Step = "businessArea"
	StepSubcategory  Step = "subcategory"
	StepEnjoyment    Step = "enjoyment"
	StepEnergy       Step = "energy"
	StepGoal         Step = "goal"
	StepConfirmation Step = "confirmation"
	StepComplete     Step = "complete"
)

// State is the conversation state owned by a single session.
type State struct {
	Step  Step            `json:"step"`
	Entry model.TimeEntry `json:"partial_entry"`
}

// PromptKind tells a transport how to render a prompt.
type PromptKind string

const (
	KindText         PromptKind = "text"
	KindSelect       PromptKind = "select"
	KindConfirmation PromptKind = "confirmation"
)

// Prompt is the next assistant utterance and its selectable options.
type Prompt struct {
	Text    string     `json:"text"`
	Options []string   `json:"options,omitempty"`
	Kind    PromptKind `json:"kind"`
}

// Options are the externally supplied lists shown in classification prompts.
// Answers are never validated against them.
type Options struct {
	Matters       []string `json:"matters"`
	CostCentres   []string `json:"cost_centres"`
	BusinessAreas []string `json:"business_areas"`
	Subcategories []string `json:"subcategories"`
}

// Env carries everything a transition reads from outside the state.
type Env struct {
	Now     time.Time
	Options Options
}

// Result is the outcome of one transition.
type Result struct {
	State  State  `json:"state"`
	Prompt Prompt `json:"prompt"`
}

// Done reports whether the user confirmed the entry.
func (r Result) Done() bool {
	return r.State.Step == StepComplete
}
