package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"asistencia/internal/domain"
)

var errAborted = errors.New("entry capture aborted")

// prompter asks the operator for one value at a time.
type prompter interface {
	Input(message, def string, required bool) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message, def string, required bool) (string, error) {
	var out string
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

type entryField struct {
	label    string
	required bool
	// carry offers the previous entry's value as the default.
	carry  bool
	target func(*domain.Entry) *string
}

var entryFields = []entryField{
	{"Fecha (Día/Mes/Año):", true, true, func(e *domain.Entry) *string { return &e.Date }},
	{"Hora:", false, true, func(e *domain.Entry) *string { return &e.Time }},
	{"Documento de Identidad:", true, false, func(e *domain.Entry) *string { return &e.IdentityDocument }},
	{"EPS:", false, false, func(e *domain.Entry) *string { return &e.Insurer }},
	{"Nombre del Paciente:", true, false, func(e *domain.Entry) *string { return &e.PatientName }},
	{"Procedimiento:", true, false, func(e *domain.Entry) *string { return &e.Procedure }},
	{"Nombre/Firma Familiar:", false, false, func(e *domain.Entry) *string { return &e.FamilySignatureName }},
	{"Nombre/Firma Colaborador:", false, false, func(e *domain.Entry) *string { return &e.CollaboratorSignatureName }},
}

// collectEntries prompts for entries until the operator declines to add more.
// The previous entry's date and time are offered as defaults for the next one.
func collectEntries(p prompter) ([]domain.Entry, error) {
	var (
		entries []domain.Entry
		prev    domain.Entry
	)
	for {
		var e domain.Entry
		for _, f := range entryFields {
			def := ""
			if f.carry {
				def = *f.target(&prev)
			}
			v, err := p.Input(f.label, def, f.required)
			if err != nil {
				return entries, err
			}
			*f.target(&e) = v
		}

		if err := e.Validate(); err != nil {
			fmt.Printf("entrada descartada: %v\n", err)
		} else {
			entries = append(entries, e)
			prev = e
		}

		more, err := p.Confirm("¿Agregar otra entrada?", true)
		if err != nil {
			return entries, err
		}
		if !more {
			return entries, nil
		}
	}
}
