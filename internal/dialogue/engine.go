package dialogue

import (
	"fmt"
	"strings"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/timeexpr"
)

// Start returns a fresh state at the greeting with the opening prompt.
func Start() Result {
	return Result{
		State:  State{Step: StepGreeting},
		Prompt: Prompt{Text: PromptGreeting, Kind: KindText},
	}
}

// Transition applies one user answer to st and returns the next state and
// prompt. It has no side effects; callers persist the returned state.
// Blank input leaves the state unchanged and repeats the pending question.
func Transition(st State, input string, env Env) Result {
	input = strings.TrimSpace(input)
	if st.Step == StepComplete {
		return Start()
	}
	if input == "" {
		return Result{State: st, Prompt: PromptFor(st.Step, st.Entry, env.Options)}
	}

	e := st.Entry
	switch st.Step {
	case StepGreeting:
		e.TaskDescription = input
		return next(StepTask, e, Prompt{Text: PromptDuration, Kind: KindText})

	case StepTask:
		// A bare duration here answers the previous question, not the task.
		if !timeexpr.IsBare(input) {
			e.TaskDescription = input
		}
		return next(StepTime, e, Prompt{Text: PromptDurationMore, Kind: KindText})

	case StepTime:
		e.DurationMinutes = timeexpr.Parse(input)
		e.StartTime = env.Now
		return next(StepWorkType, e, PromptFor(StepWorkType, e, env.Options))

	case StepWorkType:
		e.WorkType = ClassifyWorkType(input)
		e = e.Normalize()
		switch e.WorkType {
		case model.WorkTypeBillable:
			return next(StepMatter, e, PromptFor(StepMatter, e, env.Options))
		case model.WorkTypeNonBillable:
			return next(StepBusinessArea, e, PromptFor(StepBusinessArea, e, env.Options))
		default:
			return next(StepEnjoyment, e, PromptFor(StepEnjoyment, e, env.Options))
		}

	case StepMatter:
		e.MatterName = input
		return next(StepCostCentre, e, PromptFor(StepCostCentre, e, env.Options))

	case StepCostCentre:
		e.CostCentreName = input
		return next(StepEnjoyment, e, PromptFor(StepEnjoyment, e, env.Options))

	case StepBusinessArea:
		e.BusinessAreaName = input
		return next(StepSubcategory, e, PromptFor(StepSubcategory, e, env.Options))

	case StepSubcategory:
		e.SubcategoryName = input
		return next(StepEnjoyment, e, PromptFor(StepEnjoyment, e, env.Options))

	case StepEnjoyment:
		e.EnjoymentLevel = input
		return next(StepEnergy, e, PromptFor(StepEnergy, e, env.Options))

	case StepEnergy:
		e.EnergyImpact = input
		return next(StepGoal, e, PromptFor(StepGoal, e, env.Options))

	case StepGoal:
		e.TaskGoal = input
		return next(StepConfirmation, e, PromptFor(StepConfirmation, e, env.Options))

	case StepConfirmation:
		if IsAffirmative(input) {
			return next(StepComplete, e, Prompt{Text: PromptSaving, Kind: KindText})
		}
		return Result{
			State:  State{Step: StepGreeting},
			Prompt: Prompt{Text: PromptStartOver, Kind: KindText},
		}
	}

	// Unknown step, e.g. a snapshot written by an older release.
	return Start()
}

// Resume moves a draft back to step, keeping every collected field, and
// asks that step's question again.
func Resume(entry model.TimeEntry, step Step, opts Options) Result {
	return next(step, entry, PromptFor(step, entry, opts))
}

// PromptFor returns the question a conversation waiting at step asks.
func PromptFor(step Step, entry model.TimeEntry, opts Options) Prompt {
	switch step {
	case StepGreeting:
		return Prompt{Text: PromptGreeting, Kind: KindText}
	case StepTask:
		return Prompt{Text: PromptDuration, Kind: KindText}
	case StepTime:
		return Prompt{Text: PromptDurationMore, Kind: KindText}
	case StepWorkType:
		return Prompt{Text: PromptWorkType, Options: WorkTypeOptions, Kind: KindSelect}
	case StepMatter:
		return Prompt{Text: PromptMatter, Options: opts.Matters, Kind: KindSelect}
	case StepCostCentre:
		return Prompt{Text: PromptCostCentre, Options: opts.CostCentres, Kind: KindSelect}
	case StepBusinessArea:
		return Prompt{Text: PromptBusinessArea, Options: opts.BusinessAreas, Kind: KindSelect}
	case StepSubcategory:
		return Prompt{Text: PromptSubcategory, Options: opts.Subcategories, Kind: KindSelect}
	case StepEnjoyment:
		return Prompt{Text: PromptEnjoyment, Options: EnjoymentOptions, Kind: KindSelect}
	case StepEnergy:
		return Prompt{Text: PromptEnergy, Options: EnergyOptions, Kind: KindSelect}
	case StepGoal:
		return Prompt{Text: PromptGoal, Options: GoalOptions, Kind: KindSelect}
	case StepConfirmation:
		return Prompt{
			Text:    fmt.Sprintf(PromptConfirmation, Summary(entry)),
			Options: ConfirmationOptions,
			Kind:    KindConfirmation,
		}
	case StepComplete:
		return Prompt{Text: PromptSaving, Kind: KindText}
	}
	return Prompt{Text: PromptGreeting, Kind: KindText}
}

func next(step Step, e model.TimeEntry, p Prompt) Result {
	return Result{State: State{Step: step, Entry: e}, Prompt: p}
}
